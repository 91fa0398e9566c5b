package filesys

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
)

func TestReadFileMissingClassifies(t *testing.T) {
	_, err := OS{}.ReadFile(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	want := []byte("a\nb\n")
	if err := (OS{}).WriteFile(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := OS{}.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Fatalf("round trip mismatch: %q", got)
	}
	if !(OS{}).Exists(path) {
		t.Fatal("Exists false for written file")
	}
}

func TestGlobSpansDirectories(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, ".gitignore"), "top\n")
	mustWrite(t, filepath.Join(root, "sub", "deep", ".gitignore"), "deep\n")
	mustWrite(t, filepath.Join(root, "sub", "other.txt"), "x\n")

	got, err := OS{}.Glob(root, "**/.gitignore")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	want := []string{
		filepath.Join(root, ".gitignore"),
		filepath.Join(root, "sub", "deep", ".gitignore"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Glob = %v, want %v", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitLines([]byte(tc.in)); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitLines(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestJoinLines(t *testing.T) {
	if got := JoinLines([]string{"a", "b"}); string(got) != "a\nb\n" {
		t.Fatalf("JoinLines = %q", got)
	}
	if JoinLines(nil) != nil {
		t.Fatal("JoinLines(nil) must be nil")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
