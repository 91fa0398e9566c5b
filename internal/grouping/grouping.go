// Package grouping partitions file paths into version groups by content hash.
//
// Hashing runs on a bounded worker pool; each worker writes only its own slot
// of a per-path results slice, and a single sequential pass afterwards merges
// the slots into groups. Group order follows first appearance in the input,
// and paths inside a group keep input order, so output is deterministic.
package grouping

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/filesys"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/hashing"
)

// hashWorkers bounds concurrent file reads during grouping.
const hashWorkers = 8

// Group is one distinct content variant: every path whose content hashes to
// Digest. Immutable once returned.
type Group struct {
	Digest hashing.Digest
	Paths  []string
}

// Size returns the number of paths carrying this variant.
func (g Group) Size() int { return len(g.Paths) }

type pathResult struct {
	digest hashing.Digest
	err    error
	ok     bool
}

// GroupFiles groups explicitly requested paths. Any unreadable path is fatal:
// requested inputs are never silently dropped. Cancellation returns the
// groups built from paths hashed so far alongside fault.ErrCancelled.
func GroupFiles(ctx context.Context, fsys filesys.FS, hash hashing.Hasher, paths []string) ([]Group, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	results := hashAll(ctx, fsys, hash, paths)

	partial := merge(paths, results)
	if err := ctx.Err(); err != nil {
		return partial, fault.Cancelled("group")
	}
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
	}
	return partial, nil
}

// GroupDiscovered groups paths found by a bulk scan. Read failures are
// collected per path and reported without aborting the scan. On cancellation
// the groups built so far are returned with fault.ErrCancelled appended.
func GroupDiscovered(ctx context.Context, fsys filesys.FS, hash hashing.Hasher, paths []string) ([]Group, []error) {
	if len(paths) == 0 {
		return nil, nil
	}

	results := hashAll(ctx, fsys, hash, paths)

	var skipped []error
	for _, r := range results {
		if r.err != nil && !errors.Is(r.err, context.Canceled) {
			skipped = append(skipped, r.err)
		}
	}
	groups := merge(paths, results)
	if ctx.Err() != nil {
		skipped = append(skipped, fault.Cancelled("scan"))
	}
	return groups, skipped
}

func hashAll(ctx context.Context, fsys filesys.FS, hash hashing.Hasher, paths []string) []pathResult {
	results := make([]pathResult, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(hashWorkers)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = pathResult{err: err}
				return nil
			}
			data, err := fsys.ReadFile(p)
			if err != nil {
				results[i] = pathResult{err: err}
				return nil
			}
			results[i] = pathResult{digest: hash(data), ok: true}
			return nil
		})
	}
	// Workers report failures through their slot, never through Wait.
	_ = g.Wait()
	return results
}

// merge is the single-writer combination step: sequential over input order.
func merge(paths []string, results []pathResult) []Group {
	index := make(map[hashing.Digest]int)
	var groups []Group
	for i, p := range paths {
		r := results[i]
		if !r.ok {
			continue
		}
		if gi, seen := index[r.digest]; seen {
			groups[gi].Paths = append(groups[gi].Paths, p)
			continue
		}
		index[r.digest] = len(groups)
		groups = append(groups, Group{Digest: r.digest, Paths: []string{p}})
	}
	return groups
}
