package convert

import (
	"os"
	"path/filepath"
	"testing"

	"webpify/pkg/imgcodec"
)

func normalizedBase(t *testing.T, input, output string) Options {
	t.Helper()
	opts, err := baseOptions(input, output).normalized()
	if err != nil {
		t.Fatal(err)
	}
	return opts
}

func TestDiscoverPreFiltersTargetExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.png"), []byte("x"))
	writeFile(t, filepath.Join(dir, "skip.webp"), []byte("x"))
	writeFile(t, filepath.Join(dir, "SKIP.WEBP"), []byte("x"))

	tasks, err := Discover(normalizedBase(t, dir, t.TempDir()))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 1 || tasks[0].RelPath != "keep.png" {
		t.Fatalf("tasks = %+v, want only keep.png", tasks)
	}
	if !filepath.IsAbs(tasks[0].Path) {
		t.Fatalf("task path %q should be absolute", tasks[0].Path)
	}
}

func TestDiscoverSkipsOutputInsideRoot(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "converted")
	writeFile(t, filepath.Join(dir, "a.png"), []byte("x"))
	writeFile(t, filepath.Join(out, "b.png"), []byte("x"))

	tasks, err := Discover(normalizedBase(t, dir, out))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 1 || tasks[0].RelPath != "a.png" {
		t.Fatalf("tasks = %+v, output tree must not be rediscovered", tasks)
	}
}

func TestDiscoverSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	pic := filepath.Join(dir, "pic.jpg")
	writeFile(t, pic, []byte("x"))

	tasks, err := Discover(normalizedBase(t, pic, dir))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 1 || tasks[0].RelPath != "pic.jpg" {
		t.Fatalf("tasks = %+v, want single task for the file root", tasks)
	}

	already := filepath.Join(dir, "done.webp")
	writeFile(t, already, []byte("x"))
	tasks, err = Discover(normalizedBase(t, already, dir))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks = %+v, want none for a file already carrying the target extension", tasks)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	dir := t.TempDir()
	_, err := Discover(normalizedBase(t, filepath.Join(dir, "absent"), dir))
	if err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestNormalizedDefaults(t *testing.T) {
	opts, err := Options{}.normalized()
	if err != nil {
		t.Fatal(err)
	}
	if opts.TargetFormat != imgcodec.FormatWebP {
		t.Errorf("default target = %q, want webp", opts.TargetFormat)
	}
	if opts.Jobs < 1 {
		t.Errorf("default jobs = %d, want >= 1", opts.Jobs)
	}
	if !filepath.IsAbs(opts.InputRoot) || !filepath.IsAbs(opts.OutputRoot) {
		t.Errorf("roots not resolved: %q, %q", opts.InputRoot, opts.OutputRoot)
	}
	wd, _ := os.Getwd()
	if opts.InputRoot != wd {
		t.Errorf("default input root = %q, want %q", opts.InputRoot, wd)
	}
}
