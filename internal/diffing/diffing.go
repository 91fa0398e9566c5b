// Package diffing turns two line sequences into an ordered list of
// equal/insert/delete/replace spans.
//
// The underlying diff is sergi/go-diff in line mode; this package only
// reshapes its output. A delete immediately followed by an insert (or the
// reverse) is coalesced into a single replace span, so downstream code sees
// at most one change block per contiguous divergence.
package diffing

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies a span.
type Kind int

const (
	KindEqual Kind = iota
	KindInsert
	KindDelete
	KindReplace
)

func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "equal"
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Span is a maximal contiguous run of one kind. ALines/AStart address side A
// (version 1), BLines/BStart side B (version 2). Equal spans carry the same
// lines on both sides; inserts have no ALines; deletes no BLines.
type Span struct {
	Kind   Kind
	ALines []string
	BLines []string
	AStart int
	BStart int
}

// Differ is the line-diff collaborator signature. Diff is the default.
type Differ func(a, b []string) []Span

// Diff computes ordered spans between two line sequences.
func Diff(a, b []string) []Span {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	dmp := diffmatchpatch.New()
	c1, c2, lineArray := dmp.DiffLinesToChars(textOf(a), textOf(b))
	raw := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArray)

	var spans []Span
	ai, bi := 0, 0
	for _, d := range raw {
		lines := splitLines(d.Text)
		if len(lines) == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			spans = append(spans, Span{Kind: KindEqual, ALines: lines, BLines: lines, AStart: ai, BStart: bi})
			ai += len(lines)
			bi += len(lines)
		case diffmatchpatch.DiffDelete:
			spans = append(spans, Span{Kind: KindDelete, ALines: lines, AStart: ai, BStart: bi})
			ai += len(lines)
		case diffmatchpatch.DiffInsert:
			spans = append(spans, Span{Kind: KindInsert, BLines: lines, AStart: ai, BStart: bi})
			bi += len(lines)
		}
	}
	return coalesce(spans)
}

// coalesce merges adjacent delete/insert pairs into replace spans and fuses
// adjacent spans of equal kind.
func coalesce(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if len(out) == 0 {
			out = append(out, s)
			continue
		}
		last := &out[len(out)-1]
		switch {
		case last.Kind == s.Kind && s.Kind != KindEqual:
			last.ALines = append(last.ALines, s.ALines...)
			last.BLines = append(last.BLines, s.BLines...)
		case pairsToReplace(last.Kind, s.Kind):
			last.Kind = KindReplace
			last.ALines = append(last.ALines, s.ALines...)
			last.BLines = append(last.BLines, s.BLines...)
		default:
			out = append(out, s)
		}
	}
	return out
}

func pairsToReplace(prev, next Kind) bool {
	if prev == KindDelete && next == KindInsert {
		return true
	}
	if prev == KindInsert && next == KindDelete {
		return true
	}
	// A replace can absorb a trailing insert or delete from the same divergence.
	if prev == KindReplace && (next == KindInsert || next == KindDelete) {
		return true
	}
	return false
}

func textOf(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
