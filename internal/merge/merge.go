// Package merge drives the iterative pairwise merge: repeatedly select the
// most similar remaining pair, merge it through caller-supplied conflict
// resolution, and feed the result back in until one text remains.
//
// The loop is strictly sequential. The resolve callback (per block) and the
// continue callback (per iteration) are the only points where control
// returns to the caller; both block the loop until they answer.
package merge

import (
	"errors"
	"fmt"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/blocks"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/diffing"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/similarity"
)

// Resolver decides one change block. Returning blocks.ChoiceNone leaves the
// block as conflict markers in the merged output.
type Resolver func(b blocks.Block) blocks.Choice

// StatusFunc receives progress after each completed iteration.
type StatusFunc func(s Status)

// ContinueFunc is polled after each iteration; returning false cancels the
// merge, preserving all progress made so far.
type ContinueFunc func() bool

// Status reports one completed iteration.
type Status struct {
	Iteration   int     // 1-based count of completed iterations
	Remaining   int     // candidates left after this iteration
	Similarity  float64 // score of the pair just merged
	MergedLabel string  // label of the candidate the pair became
}

// Options tunes a merge run.
type Options struct {
	// ContextLines is the context window around each block; zero means
	// blocks.DefaultContextLines.
	ContextLines int
	// Differ overrides the line-diff primitive. Nil means diffing.Diff.
	Differ diffing.Differ
}

// Result is the outcome of a merge run.
type Result struct {
	Lines      []string
	Iterations int
	Cancelled  bool
}

// Run merges candidates down to a single text.
//
// A single candidate is returned unchanged with zero iterations. An empty
// candidate list is rejected. For n candidates and no cancellation the loop
// runs exactly n-1 iterations.
func Run(cands []Candidate, resolve Resolver, report StatusFunc, cont ContinueFunc, opts Options) (Result, error) {
	if len(cands) == 0 {
		return Result{}, fault.Newf(fault.ErrMalformed, "merge", "", errors.New("no candidates"))
	}
	if len(cands) == 1 {
		return Result{Lines: cands[0].Lines, Iterations: 0}, nil
	}

	s := &session{
		remaining: append([]Candidate(nil), cands...),
		mergedIdx: -1,
		resolve:   resolve,
		report:    report,
		cont:      cont,
		opts:      opts,
	}
	if s.opts.ContextLines <= 0 {
		s.opts.ContextLines = blocks.DefaultContextLines
	}
	if s.opts.Differ == nil {
		s.opts.Differ = diffing.Diff
	}
	return s.run()
}

// session holds the state of one merge run. Remaining shrinks by exactly one
// candidate per iteration; an empty remaining set mid-loop is unreachable
// and reported as an internal inconsistency.
type session struct {
	remaining  []Candidate
	mergedIdx  int // index of the running merge result; -1 before the first iteration
	iterations int

	resolve Resolver
	report  StatusFunc
	cont    ContinueFunc
	opts    Options
}

func (s *session) run() (Result, error) {
	var lastMerged []string

	for len(s.remaining) > 1 {
		i, j, score := s.selectPair()

		merged, err := s.mergePair(s.remaining[i], s.remaining[j])
		if err != nil {
			return Result{}, err
		}
		lastMerged = merged.Lines

		s.completeIteration(i, j, merged)
		if len(s.remaining) == 0 {
			return Result{}, fault.New(fault.ErrInternal, "merge", "")
		}

		if s.report != nil {
			s.report(Status{
				Iteration:   s.iterations,
				Remaining:   len(s.remaining),
				Similarity:  score,
				MergedLabel: merged.Label,
			})
		}
		// Completion takes precedence: the continuation gate only matters
		// while more iterations are pending.
		if len(s.remaining) > 1 && s.cont != nil && !s.cont() {
			return Result{Lines: lastMerged, Iterations: s.iterations, Cancelled: true}, nil
		}
	}

	return Result{Lines: s.remaining[0].Lines, Iterations: s.iterations}, nil
}

// selectPair picks the next pair to merge. Before any merge exists it scans
// all pairs for the globally most similar one; afterwards it compares the
// running merge result against each other candidate, which keeps selection
// linear. Ties break toward input order.
func (s *session) selectPair() (int, int, float64) {
	if s.mergedIdx >= 0 {
		best, bestScore := -1, -1.0
		for k := range s.remaining {
			if k == s.mergedIdx {
				continue
			}
			if score := similarity.Score(s.remaining[s.mergedIdx].Lines, s.remaining[k].Lines); score > bestScore {
				best, bestScore = k, score
			}
		}
		return s.mergedIdx, best, bestScore
	}

	bi, bj, bestScore := 0, 1, -1.0
	for i := 0; i < len(s.remaining); i++ {
		for j := i + 1; j < len(s.remaining); j++ {
			if score := similarity.Score(s.remaining[i].Lines, s.remaining[j].Lines); score > bestScore {
				bi, bj, bestScore = i, j, score
			}
		}
	}
	return bi, bj, bestScore
}

// mergePair diffs one pair and resolves its change blocks.
func (s *session) mergePair(a, b Candidate) (Candidate, error) {
	spans := s.opts.Differ(a.Lines, b.Lines)
	change := blocks.Decompose(a.Lines, b.Lines, spans, s.opts.ContextLines)

	choices := make(map[int]blocks.Choice, len(change))
	for _, blk := range change {
		choice := blocks.ChoiceNone
		if s.resolve != nil {
			choice = s.resolve(blk)
		}
		if !blocks.ValidFor(blk.Kind, choice) {
			return Candidate{}, fault.Newf(fault.ErrMalformed, "merge", "",
				fmt.Errorf("resolver returned %s for a %s block", choice, blk.Kind))
		}
		choices[blk.Index] = choice
	}

	lines, err := blocks.Apply(spans, choices, a.Label, b.Label)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Label: fmt.Sprintf("merge-%d", s.iterations+1), Lines: lines}, nil
}

// completeIteration removes the merged pair and appends the result.
func (s *session) completeIteration(i, j int, merged Candidate) {
	next := make([]Candidate, 0, len(s.remaining)-1)
	for k, c := range s.remaining {
		if k == i || k == j {
			continue
		}
		next = append(next, c)
	}
	s.remaining = append(next, merged)
	s.mergedIdx = len(s.remaining) - 1
	s.iterations++
}
