package convert

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"webpify/pkg/imgcodec"
)

// decodeImage is swappable so tests can stand in a faulty codec.
var decodeImage = imgcodec.Decode

// processTask is a total function from task to outcome: every failure mode,
// including a panic inside a codec, is converted into an Outcome value so
// one bad file can never take down a sibling worker.
func processTask(task Task, opts Options) (out Outcome) {
	out = Outcome{Source: task.Display}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{
				Status: StatusFailed,
				Source: task.Display,
				Err:    fmt.Errorf("panic: %v", r),
			}
		}
	}()

	file, err := os.Open(task.Path)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	format, err := imgcodec.Sniff(file)
	if err != nil {
		_ = file.Close()
		out.Status = StatusFailed
		out.Err = err
		return out
	}
	out.Format = format

	reason, eligible := classify(format, opts)
	if !eligible {
		_ = file.Close()
		out.Status = StatusSkipped
		out.Reason = reason
		return out
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		_ = file.Close()
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	srcInfo, err := file.Stat()
	if err != nil {
		_ = file.Close()
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	img, err := decodeImage(file, format)
	if err != nil {
		_ = file.Close()
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	dest := destPath(task, opts)
	if err := writeConverted(dest, img, srcInfo.Mode(), opts); err != nil {
		_ = file.Close()
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	out.Status = StatusConverted
	out.Dest = dest

	// The target formats carry none of the source's EXIF; say so rather
	// than dropping location data silently.
	if note := droppedMetadataNote(file, format); note != "" {
		out.Note = note
	}
	_ = file.Close()

	if opts.DeleteOriginal {
		if err := os.Remove(task.Path); err != nil {
			out.Note = appendNote(out.Note, "failed to delete original: "+err.Error())
		} else {
			out.Note = appendNote(out.Note, "deleted original")
		}
	}

	return out
}

// destPath re-roots the task's relative path under the output root and
// swaps the extension for the target's canonical one. Sources differing
// only by extension (a.jpg, a.png) collapse to the same destination; the
// last writer wins and both report as converted.
func destPath(task Task, opts Options) string {
	rel := strings.TrimSuffix(task.RelPath, filepath.Ext(task.RelPath)) + opts.TargetFormat.Ext()
	return filepath.Join(opts.OutputRoot, rel)
}

// writeConverted encodes into a temp file in the destination directory and
// renames it into place, so a failed encode never leaves a partial output.
// MkdirAll is idempotent: workers racing on a shared parent all succeed.
func writeConverted(dest string, img image.Image, mode os.FileMode, opts Options) error {
	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(destDir, "webpify-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(mode.Perm()); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := imgcodec.Encode(tmpFile, img, opts.TargetFormat, opts.Quality); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), dest)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " | " + note
}
