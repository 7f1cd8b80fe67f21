package convert

import (
	"path/filepath"
	"testing"

	"webpify/pkg/imgcodec"
)

func TestDestPath(t *testing.T) {
	opts := Options{OutputRoot: "/out", TargetFormat: imgcodec.FormatWebP}

	cases := []struct {
		rel  string
		want string
	}{
		{filepath.Join("a", "b", "c.jpg"), filepath.Join("/out", "a", "b", "c.webp")},
		{"top.PNG", filepath.Join("/out", "top.webp")},
		{"noext", filepath.Join("/out", "noext.webp")},
		{"dotted.name.gif", filepath.Join("/out", "dotted.name.webp")},
	}

	for _, tc := range cases {
		got := destPath(Task{RelPath: tc.rel}, opts)
		if got != tc.want {
			t.Errorf("destPath(%q) = %q, want %q", tc.rel, got, tc.want)
		}
	}
}

func TestDestPathJPEGTarget(t *testing.T) {
	opts := Options{OutputRoot: "/out", TargetFormat: imgcodec.FormatJPEG}
	if got := destPath(Task{RelPath: "pic.png"}, opts); got != filepath.Join("/out", "pic.jpg") {
		t.Fatalf("got %q", got)
	}
}

func TestAppendNote(t *testing.T) {
	if got := appendNote("", "deleted original"); got != "deleted original" {
		t.Errorf("got %q", got)
	}
	if got := appendNote("dropped EXIF metadata (3 tags)", "failed to delete original: permission denied"); got !=
		"dropped EXIF metadata (3 tags) | failed to delete original: permission denied" {
		t.Errorf("got %q", got)
	}
}

func TestProcessTaskMissingFile(t *testing.T) {
	opts, err := baseOptions(t.TempDir(), t.TempDir()).normalized()
	if err != nil {
		t.Fatal(err)
	}

	out := processTask(Task{Path: filepath.Join(opts.InputRoot, "gone.png"), RelPath: "gone.png", Display: "gone.png"}, opts)
	if out.Status != StatusFailed || out.Err == nil {
		t.Fatalf("outcome = %+v, want Failed", out)
	}
	if out.Source != "gone.png" {
		t.Fatalf("source = %q", out.Source)
	}
}
