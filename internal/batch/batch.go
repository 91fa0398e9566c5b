// Package batch drives the merge orchestrator across many file-name patterns
// and search roots, deciding per pattern whether merging is even necessary,
// and synchronizes merged results back to every contributing location.
package batch

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/filesys"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/grouping"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/hashing"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/merge"
)

// Action is the caller's answer when a pattern has genuinely divergent
// versions.
type Action int

const (
	ActionRunMerge Action = iota
	ActionSkip
	ActionStopBatch
)

// PromptFunc is consulted before merging a pattern with two or more
// divergent version groups. It never fires for patterns whose duplicates are
// byte-identical.
type PromptFunc func(pattern string, groups []grouping.Group) Action

// Disposition records what happened to one pattern.
type Disposition int

const (
	DispositionNoFiles Disposition = iota
	DispositionAllUnique
	DispositionIdentical
	DispositionSkipped
	DispositionMerged
	DispositionCancelled
	DispositionStopped
	DispositionFailed
)

func (d Disposition) String() string {
	switch d {
	case DispositionNoFiles:
		return "no files found"
	case DispositionAllUnique:
		return "all versions unique, nothing to merge"
	case DispositionIdentical:
		return "identical, no action needed"
	case DispositionSkipped:
		return "skipped"
	case DispositionMerged:
		return "merged"
	case DispositionCancelled:
		return "merge cancelled"
	case DispositionStopped:
		return "batch stopped"
	case DispositionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PatternResult is the outcome record for one pattern.
type PatternResult struct {
	Pattern         string
	FilesMatched    int
	GroupsFound     int
	DivergentGroups int // groups with more than one file
	Disposition     Disposition
	Success         bool
	FilesUpdated    int
	SkippedReads    []error // per-path discovery failures, scan continued
	WriteErr        error   // aggregated write-back failures
	MergeErr        error
}

// Summary accumulates across all patterns of a run.
type Summary struct {
	ConfigName string
	Results    []PatternResult
	Stopped    bool
}

// FilesUpdated is the total number of paths rewritten by cross-location sync.
func (s Summary) FilesUpdated() int {
	return lo.SumBy(s.Results, func(r PatternResult) int { return r.FilesUpdated })
}

// FilesMatched is the total number of paths discovered across patterns.
func (s Summary) FilesMatched() int {
	return lo.SumBy(s.Results, func(r PatternResult) int { return r.FilesMatched })
}

// Deps are the collaborators a batch run threads through to discovery and
// merging. Zero-value fields get production defaults.
type Deps struct {
	FS       filesys.FS
	Hash     hashing.Hasher
	Resolve  merge.Resolver
	Status   merge.StatusFunc
	Continue merge.ContinueFunc
	Merge    merge.Options
	// DryRun computes groups and decisions but skips write-back.
	DryRun bool
}

func (d Deps) withDefaults() Deps {
	if d.FS == nil {
		d.FS = filesys.OS{}
	}
	if d.Hash == nil {
		d.Hash = hashing.XXH3
	}
	return d
}

// Process runs one batch configuration. The returned summary holds a result
// per processed pattern; patterns after a StopBatch answer are absent.
// Context cancellation returns the summary built so far with
// fault.ErrCancelled.
func Process(ctx context.Context, deps Deps, cfg Configuration, prompt PromptFunc) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	deps = deps.withDefaults()

	summary := Summary{ConfigName: cfg.Name}
	for _, pattern := range cfg.Patterns {
		if ctx.Err() != nil {
			return summary, fault.Cancelled("batch")
		}

		result, stop := processPattern(ctx, deps, cfg, pattern, prompt)
		if result.Disposition == DispositionNoFiles && cfg.SkipEmptyPatterns {
			continue
		}
		summary.Results = append(summary.Results, result)
		if stop {
			summary.Stopped = true
			break
		}
	}
	return summary, nil
}

func processPattern(ctx context.Context, deps Deps, cfg Configuration, pattern string, prompt PromptFunc) (PatternResult, bool) {
	result := PatternResult{Pattern: pattern}

	paths, err := discover(deps.FS, cfg.SearchRoots, pattern, cfg.Exclusions)
	if err != nil {
		result.Disposition = DispositionFailed
		result.MergeErr = err
		return result, false
	}
	result.FilesMatched = len(paths)
	if len(paths) == 0 {
		result.Disposition = DispositionNoFiles
		result.Success = true
		return result, false
	}

	groups, skipped := grouping.GroupDiscovered(ctx, deps.FS, deps.Hash, paths)
	result.SkippedReads = skipped
	result.GroupsFound = len(groups)
	if ctx.Err() != nil {
		result.Disposition = DispositionCancelled
		result.MergeErr = fault.Cancelled("group")
		return result, false
	}

	divergent := lo.Filter(groups, func(g grouping.Group, _ int) bool { return g.Size() > 1 })
	result.DivergentGroups = len(divergent)

	switch {
	case len(groups) == 0:
		result.Disposition = DispositionNoFiles
		return result, false
	case len(divergent) == 0:
		result.Disposition = DispositionAllUnique
		result.Success = true
		return result, false
	case len(divergent) == 1:
		// All duplicates byte-identical. Auto-skip, never prompt.
		result.Disposition = DispositionIdentical
		result.Success = true
		return result, false
	}

	action := ActionRunMerge
	if cfg.PromptBeforeEachPattern && prompt != nil {
		action = prompt(pattern, groups)
	}
	switch action {
	case ActionSkip:
		result.Disposition = DispositionSkipped
		result.Success = true
		return result, false
	case ActionStopBatch:
		result.Disposition = DispositionStopped
		result.Success = true
		return result, true
	}

	mergePattern(deps, divergent, &result)
	return result, false
}

// mergePattern unifies the divergent groups and writes the final text back
// to every path in every contributing group.
func mergePattern(deps Deps, divergent []grouping.Group, result *PatternResult) {
	reps := lo.Map(divergent, func(g grouping.Group, _ int) string { return g.Paths[0] })

	cands, err := merge.PrepareCandidates(deps.FS, reps)
	if err != nil {
		result.Disposition = DispositionFailed
		result.MergeErr = err
		return
	}

	res, err := merge.Run(cands, deps.Resolve, deps.Status, deps.Continue, deps.Merge)
	if err != nil {
		result.Disposition = DispositionFailed
		result.MergeErr = err
		return
	}
	if res.Cancelled {
		result.Disposition = DispositionCancelled
		return
	}

	result.Disposition = DispositionMerged
	if deps.DryRun {
		result.Success = true
		return
	}

	text := filesys.JoinLines(res.Lines)
	var writeErr *multierror.Error
	for _, g := range divergent {
		for _, path := range g.Paths {
			if err := deps.FS.WriteFile(path, text); err != nil {
				// One target's failure never blocks the remaining writes.
				writeErr = multierror.Append(writeErr, err)
				continue
			}
			result.FilesUpdated++
		}
	}
	result.WriteErr = writeErr.ErrorOrNil()
	result.Success = result.WriteErr == nil
}

// discover matches pattern under every search root, applies exclusion globs,
// and deduplicates across overlapping roots. Bare names match at any depth.
func discover(fsys filesys.FS, roots []string, pattern string, exclusions []string) ([]string, error) {
	glob := pattern
	if !strings.Contains(pattern, "/") {
		glob = "**/" + pattern
	}

	seen := make(map[string]struct{})
	var out []string
	for _, root := range roots {
		matches, err := fsys.Glob(root, glob)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			if excluded(root, m, exclusions) {
				continue
			}
			out = append(out, m)
		}
	}
	return out, nil
}

func excluded(root, path string, exclusions []string) bool {
	rel := strings.TrimPrefix(path, root)
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	for _, ex := range exclusions {
		if ok, err := doublestar.Match(ex, rel); err == nil && ok {
			return true
		}
	}
	return false
}
