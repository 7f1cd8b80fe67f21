package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrInputNotFound aborts the run before any task is scheduled.
var ErrInputNotFound = errors.New("input path does not exist")

// normalized resolves both roots to absolute paths and fills defaulted
// fields so workers never have to re-derive them.
func (o Options) normalized() (Options, error) {
	if o.InputRoot == "" {
		o.InputRoot = "."
	}
	if o.OutputRoot == "" {
		o.OutputRoot = "."
	}

	absIn, err := filepath.Abs(o.InputRoot)
	if err != nil {
		return o, err
	}
	absOut, err := filepath.Abs(o.OutputRoot)
	if err != nil {
		return o, err
	}
	o.InputRoot = absIn
	o.OutputRoot = absOut

	if o.TargetFormat == "" {
		o.TargetFormat = defaultTarget
	}
	if o.Jobs < 1 {
		o.Jobs = runtime.NumCPU()
	}
	return o, nil
}

// Discover walks the input root and returns the complete task list. The walk
// is sequential and finishes before any conversion starts, so the batch size
// is known up front. Symlink cycles are not detected.
//
// Files whose extension already equals the target extension are excluded
// here as a cheap pre-filter; the content-based filter in the worker would
// skip them anyway.
func Discover(opts Options) ([]Task, error) {
	info, err := os.Stat(opts.InputRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputRoot)
		}
		return nil, err
	}

	targetExt := opts.TargetFormat.Ext()

	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(opts.InputRoot), targetExt) {
			return nil, nil
		}
		base := filepath.Base(opts.InputRoot)
		return []Task{{Path: opts.InputRoot, RelPath: base, Display: base}}, nil
	}

	// Never descend into the output tree when it sits inside the input
	// root, or converted files would be rediscovered on the next run.
	outputInsideRoot := filepath.Clean(opts.OutputRoot) != filepath.Clean(opts.InputRoot) &&
		isWithin(filepath.Clean(opts.OutputRoot), filepath.Clean(opts.InputRoot))

	var tasks []Task
	fsys := os.DirFS(opts.InputRoot)
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if outputInsideRoot {
				fullDir := filepath.Join(opts.InputRoot, path)
				if isWithin(fullDir, opts.OutputRoot) {
					return fs.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), targetExt) {
			return nil
		}

		tasks = append(tasks, Task{
			Path:    filepath.Join(opts.InputRoot, path),
			RelPath: path,
			Display: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if strings.HasPrefix(rel, "..") || strings.HasPrefix(rel, "..\\") || strings.HasPrefix(rel, "../") {
		return false
	}
	return true
}
