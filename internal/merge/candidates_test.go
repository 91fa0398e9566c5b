package merge

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/filesys"
)

func TestPrepareCandidates(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one")
	p2 := filepath.Join(dir, "two")
	if err := os.WriteFile(p1, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p2, []byte("c\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cands, err := PrepareCandidates(filesys.OS{}, []string{p1, p2})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Label != p1 || !reflect.DeepEqual(cands[0].Lines, []string{"a", "b"}) {
		t.Fatalf("candidate 0 = %+v", cands[0])
	}
	if cands[1].Label != p2 || !reflect.DeepEqual(cands[1].Lines, []string{"c"}) {
		t.Fatalf("candidate 1 = %+v", cands[1])
	}
}

func TestPrepareCandidatesMissingPathIsFatal(t *testing.T) {
	_, err := PrepareCandidates(filesys.OS{}, []string{filepath.Join(t.TempDir(), "gone")})
	if !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
