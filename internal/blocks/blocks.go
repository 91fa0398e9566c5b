// Package blocks decomposes a line diff into change blocks with context and
// applies caller-chosen resolutions to produce merged text.
//
// Application is a single forward pass over spans in original order: each
// step appends to a fresh output slice, so no index arithmetic ever shifts
// under an earlier edit.
package blocks

import (
	"fmt"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/diffing"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/markers"
)

// DefaultContextLines is the context window shown around a block.
const DefaultContextLines = 3

// Choice is a resolution for one change block. Validity depends on the block
// kind; see ValidFor.
type Choice int

const (
	// ChoiceNone marks a block the caller declined to resolve. Apply renders
	// it as conflict markers instead of blocking the merge.
	ChoiceNone Choice = iota
	ChoiceInclude
	ChoiceSkip
	ChoiceKeep
	ChoiceRemove
	ChoiceUseVersion1
	ChoiceUseVersion2
	ChoiceUseBoth
)

func (c Choice) String() string {
	switch c {
	case ChoiceNone:
		return "none"
	case ChoiceInclude:
		return "include"
	case ChoiceSkip:
		return "skip"
	case ChoiceKeep:
		return "keep"
	case ChoiceRemove:
		return "remove"
	case ChoiceUseVersion1:
		return "use-version-1"
	case ChoiceUseVersion2:
		return "use-version-2"
	case ChoiceUseBoth:
		return "use-both"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

// ValidFor reports whether c is a legal resolution for kind. ChoiceNone is
// legal everywhere (it means "leave as markers").
func ValidFor(kind diffing.Kind, c Choice) bool {
	if c == ChoiceNone {
		return true
	}
	switch kind {
	case diffing.KindInsert:
		return c == ChoiceInclude || c == ChoiceSkip
	case diffing.KindDelete:
		return c == ChoiceKeep || c == ChoiceRemove
	case diffing.KindReplace:
		return c == ChoiceUseVersion1 || c == ChoiceUseVersion2 || c == ChoiceUseBoth || c == ChoiceSkip
	default:
		return false
	}
}

// Context is the unedited surrounding lines of a block, per side, clipped to
// sequence bounds. Built from the original sequences, so earlier resolutions
// never change what later blocks display.
type Context struct {
	Before1 []string
	After1  []string
	Before2 []string
	After2  []string
}

// Block is one contiguous non-equal span with its context.
type Block struct {
	Kind    diffing.Kind
	Index   int // ordinal among change blocks, in document order
	V1Lines []string
	V2Lines []string
	V1Start int
	V2Start int
	Context Context
}

// Decompose extracts the change blocks from spans, attaching contextLines of
// context from each original sequence.
func Decompose(v1, v2 []string, spans []diffing.Span, contextLines int) []Block {
	if contextLines < 0 {
		contextLines = DefaultContextLines
	}
	var out []Block
	for _, s := range spans {
		if s.Kind == diffing.KindEqual {
			continue
		}
		b := Block{
			Kind:    s.Kind,
			Index:   len(out),
			V1Lines: s.ALines,
			V2Lines: s.BLines,
			V1Start: s.AStart,
			V2Start: s.BStart,
			Context: Context{
				Before1: window(v1, s.AStart-contextLines, s.AStart),
				After1:  window(v1, s.AStart+len(s.ALines), s.AStart+len(s.ALines)+contextLines),
				Before2: window(v2, s.BStart-contextLines, s.BStart),
				After2:  window(v2, s.BStart+len(s.BLines), s.BStart+len(s.BLines)+contextLines),
			},
		}
		out = append(out, b)
	}
	return out
}

// window clips [from,to) to the bounds of lines.
func window(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	return lines[from:to]
}

// Apply builds the merged sequence: equal spans pass through verbatim, change
// blocks contribute lines according to choices (keyed by Block.Index), and
// unresolved blocks become conflict markers labeled label1/label2.
func Apply(spans []diffing.Span, choices map[int]Choice, label1, label2 string) ([]string, error) {
	var out []string
	blockIdx := 0
	for _, s := range spans {
		if s.Kind == diffing.KindEqual {
			out = append(out, s.ALines...)
			continue
		}

		choice := choices[blockIdx]
		if !ValidFor(s.Kind, choice) {
			return nil, fault.Newf(fault.ErrMalformed, "apply", "",
				fmt.Errorf("choice %s is not valid for a %s block", choice, s.Kind))
		}
		blockIdx++

		switch choice {
		case ChoiceNone:
			out = append(out, markers.Render(label1, label2, s.ALines, s.BLines)...)
		case ChoiceInclude, ChoiceUseVersion2:
			out = append(out, s.BLines...)
		case ChoiceKeep, ChoiceUseVersion1:
			out = append(out, s.ALines...)
		case ChoiceUseBoth:
			out = append(out, s.ALines...)
			out = append(out, s.BLines...)
		case ChoiceSkip, ChoiceRemove:
			// Contribute nothing.
		}
	}
	return out, nil
}
