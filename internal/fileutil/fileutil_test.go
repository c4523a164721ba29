package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"soundrip/internal/fileutil"
)

func TestIsNonEmptyFile(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.mp3")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	full := filepath.Join(dir, "full.mp3")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if fileutil.IsNonEmptyFile(empty) {
		t.Fatal("empty file reported non-empty")
	}
	if !fileutil.IsNonEmptyFile(full) {
		t.Fatal("non-empty file not detected")
	}
	if fileutil.IsNonEmptyFile(filepath.Join(dir, "missing.mp3")) {
		t.Fatal("missing file reported non-empty")
	}
	if fileutil.IsNonEmptyFile(dir) {
		t.Fatal("directory reported as file")
	}
}

func TestResolveByStem(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"clip.opus", "clip.part", "other.mp3", "clipping.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	path, ok := fileutil.ResolveByStem(dir, "clip")
	if !ok {
		t.Fatal("expected a match")
	}
	if filepath.Base(path) != "clip.opus" {
		t.Fatalf("unexpected match %q", path)
	}

	if _, ok := fileutil.ResolveByStem(dir, "absent"); ok {
		t.Fatal("unexpected match for absent stem")
	}
	if _, ok := fileutil.ResolveByStem(filepath.Join(dir, "nosuch"), "clip"); ok {
		t.Fatal("unexpected match for missing directory")
	}
}
