package merge

import (
	"github.com/ktsu-dev/BlastMerge-sub002/internal/filesys"
)

// Candidate is one text participating in the merge loop: an original file's
// content, or the result of a prior iteration.
type Candidate struct {
	Label string // source path, or a synthesized label for merge results
	Lines []string
}

// PrepareCandidates reads each path into a candidate, in input order. A read
// failure on any explicitly requested path is fatal to the whole merge.
func PrepareCandidates(fsys filesys.FS, paths []string) ([]Candidate, error) {
	cands := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		data, err := fsys.ReadFile(p)
		if err != nil {
			return nil, err
		}
		cands = append(cands, Candidate{Label: p, Lines: filesys.SplitLines(data)})
	}
	return cands, nil
}
