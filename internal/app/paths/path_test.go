package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAbsoluteRequiresPath(t *testing.T) {
	if _, err := Absolute("  "); !errors.Is(err, ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
}

func TestAbsoluteResolvesRelative(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	got, err := Absolute(" schemas ")
	if err != nil {
		t.Fatalf("Absolute returned error: %v", err)
	}
	if want := filepath.Join(wd, "schemas"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestAbsoluteKeepsAbsolute(t *testing.T) {
	dir := t.TempDir()
	got, err := Absolute(dir)
	if err != nil {
		t.Fatalf("Absolute returned error: %v", err)
	}
	if got != filepath.Clean(dir) {
		t.Fatalf("expected %s, got %s", dir, got)
	}
}
