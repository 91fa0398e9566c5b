package fault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFromFSClassifiesNotFound(t *testing.T) {
	_, osErr := os.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	if osErr == nil {
		t.Fatal("expected read of missing file to fail")
	}

	err := FromFS("read", "missing.txt", osErr)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected underlying fs.ErrNotExist preserved, got %v", err)
	}
}

func TestFromFSClassifiesPermission(t *testing.T) {
	err := FromFS("write", "/etc/locked", fs.ErrPermission)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestFromFSPassesThroughUnknown(t *testing.T) {
	cause := errors.New("disk on fire")
	err := FromFS("read", "a.txt", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved, got %v", err)
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAccessDenied) {
		t.Fatalf("unknown error must not classify, got %v", err)
	}
}

func TestErrorStringCarriesOpAndPath(t *testing.T) {
	err := New(ErrNotFound, "read", "cfg/.gitignore")
	got := err.Error()
	want := "read cfg/.gitignore: not found"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	noPath := Cancelled("merge")
	if noPath.Error() != "merge: cancelled by caller" {
		t.Fatalf("Error() = %q", noPath.Error())
	}
}

func TestNilCauseDoesNotWrapNil(t *testing.T) {
	err := Newf(ErrMalformed, "parse", "x", nil)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
