package fonts

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.TTF"))
	touch(t, filepath.Join(dir, "Mono.otf"))
	touch(t, filepath.Join(dir, "README.md"))

	got, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	want := []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.TTF", "Mono.otf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got, err := ScanDir(filepath.Join(dir, "missing")); err != nil || len(got) != 0 {
		t.Errorf("Expected empty scan of a missing dir, got %v %v", got, err)
	}
}

func TestFindPrefersRegular(t *testing.T) {
	empty := t.TempDir()
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "A-Bold.ttf"))
	touch(t, filepath.Join(dir, "B-Regular.ttf"))

	path, ok := Find(filepath.Join(empty, "none"), empty, dir)
	if !ok || path != filepath.Join(dir, "B-Regular.ttf") {
		t.Errorf("Expected the regular face, got %q %v", path, ok)
	}
	if _, ok := Find(empty); ok {
		t.Error("Expected no font in an empty dir")
	}
}
