package merge

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/blocks"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/diffing"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
)

// preferVersion1 resolves every block in favor of the first side.
func preferVersion1(b blocks.Block) blocks.Choice {
	switch b.Kind {
	case diffing.KindInsert:
		return blocks.ChoiceSkip
	case diffing.KindDelete:
		return blocks.ChoiceKeep
	default:
		return blocks.ChoiceUseVersion1
	}
}

func TestRunNoCandidates(t *testing.T) {
	_, err := Run(nil, preferVersion1, nil, nil, Options{})
	if !errors.Is(err, fault.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestRunSingleCandidateIdentity(t *testing.T) {
	c := Candidate{Label: "only", Lines: []string{"a", "b"}}
	res, err := Run([]Candidate{c}, preferVersion1, nil, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 0 {
		t.Fatalf("expected 0 iterations, got %d", res.Iterations)
	}
	if !reflect.DeepEqual(res.Lines, c.Lines) {
		t.Fatalf("single candidate must pass through unchanged, got %v", res.Lines)
	}
}

func TestRunTerminatesInExactlyNMinusOneIterations(t *testing.T) {
	cands := []Candidate{
		{Label: "1", Lines: []string{"a", "b", "c"}},
		{Label: "2", Lines: []string{"a", "b", "d"}},
		{Label: "3", Lines: []string{"a", "e", "c"}},
		{Label: "4", Lines: []string{"f", "b", "c"}},
		{Label: "5", Lines: []string{"a", "b"}},
	}

	var remainingSeen []int
	res, err := Run(cands, preferVersion1, func(s Status) {
		remainingSeen = append(remainingSeen, s.Remaining)
	}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cancelled {
		t.Fatal("unexpected cancellation")
	}
	if res.Iterations != len(cands)-1 {
		t.Fatalf("iterations = %d, want %d", res.Iterations, len(cands)-1)
	}
	// Remaining count strictly decreases by one each iteration.
	want := []int{4, 3, 2, 1}
	if !reflect.DeepEqual(remainingSeen, want) {
		t.Fatalf("remaining counts = %v, want %v", remainingSeen, want)
	}
}

func TestRunMergesIdenticalPairWithoutConflicts(t *testing.T) {
	// Scenario: two identical copies plus one divergent. The identical pair
	// merges first with zero conflicts; the final merge sees exactly one
	// replace block (b vs x).
	cands := []Candidate{
		{Label: "1", Lines: []string{"a", "b", "c"}},
		{Label: "2", Lines: []string{"a", "b", "c"}},
		{Label: "3", Lines: []string{"a", "x", "c"}},
	}

	var conflicts []blocks.Block
	res, err := Run(cands, func(b blocks.Block) blocks.Choice {
		conflicts = append(conflicts, b)
		return blocks.ChoiceUseVersion1
	}, nil, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict across the run, got %d", len(conflicts))
	}
	blk := conflicts[0]
	if blk.Kind != diffing.KindReplace {
		t.Fatalf("conflict kind = %v, want replace", blk.Kind)
	}
	if blk.V1Start != 1 || !reflect.DeepEqual(blk.V1Lines, []string{"b"}) || !reflect.DeepEqual(blk.V2Lines, []string{"x"}) {
		t.Fatalf("conflict block = %+v", blk)
	}
	if !reflect.DeepEqual(res.Lines, []string{"a", "b", "c"}) {
		t.Fatalf("final text = %v", res.Lines)
	}
}

func TestRunSelectsMostSimilarPairFirst(t *testing.T) {
	// Candidates 2 and 3 share two of three lines; candidate 1 is unrelated.
	cands := []Candidate{
		{Label: "odd", Lines: []string{"q", "r", "s"}},
		{Label: "near-a", Lines: []string{"a", "b", "c"}},
		{Label: "near-b", Lines: []string{"a", "b", "d"}},
	}

	var firstStatus *Status
	_, err := Run(cands, preferVersion1, func(s Status) {
		if firstStatus == nil {
			copied := s
			firstStatus = &copied
		}
	}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if firstStatus == nil {
		t.Fatal("status callback never invoked")
	}
	if firstStatus.Similarity != 2.0/3 {
		t.Fatalf("first merge similarity = %v, want %v (the near pair)", firstStatus.Similarity, 2.0/3)
	}
}

func TestRunCancellationPreservesProgress(t *testing.T) {
	cands := []Candidate{
		{Label: "1", Lines: []string{"a", "b"}},
		{Label: "2", Lines: []string{"a", "b"}},
		{Label: "3", Lines: []string{"z"}},
	}

	res, err := Run(cands, preferVersion1, nil, func() bool { return false }, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cancelled {
		t.Fatal("expected cancelled result")
	}
	if res.Iterations != 1 {
		t.Fatalf("iterations = %d, want 1", res.Iterations)
	}
	// Progress so far: the identical pair already merged.
	if !reflect.DeepEqual(res.Lines, []string{"a", "b"}) {
		t.Fatalf("preserved progress = %v", res.Lines)
	}
}

func TestRunNilResolverLeavesMarkers(t *testing.T) {
	cands := []Candidate{
		{Label: "left", Lines: []string{"a", "old", "z"}},
		{Label: "right", Lines: []string{"a", "new", "z"}},
	}
	res, err := Run(cands, nil, nil, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "<<<<<<< left", "old", "=======", "new", ">>>>>>> right", "z"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("lines = %v, want %v", res.Lines, want)
	}
}

func TestRunRejectsInvalidResolverChoice(t *testing.T) {
	cands := []Candidate{
		{Label: "1", Lines: []string{"a", "c"}},
		{Label: "2", Lines: []string{"a", "b", "c"}}, // insert block
	}
	_, err := Run(cands, func(blocks.Block) blocks.Choice { return blocks.ChoiceUseBoth }, nil, nil, Options{})
	if !errors.Is(err, fault.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
