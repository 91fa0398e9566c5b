// Package markers renders git-style conflict markers for change blocks the
// caller declined to resolve, and detects leftover markers in merge output.
package markers

import "bytes"

var (
	markStart = []byte("<<<<<<<")
	markMid   = []byte("=======")
	markEnd   = []byte(">>>>>>>")
)

// Render produces the marker lines for one unresolved block: version 1's
// lines under label1, version 2's under label2.
func Render(label1, label2 string, v1, v2 []string) []string {
	out := make([]string, 0, len(v1)+len(v2)+3)
	out = append(out, string(markStart)+" "+label1)
	out = append(out, v1...)
	out = append(out, string(markMid))
	out = append(out, v2...)
	out = append(out, string(markEnd)+" "+label2)
	return out
}

// Contains reports whether data still carries conflict markers. Markers are
// only recognized at line start, matching how Render emits them.
func Contains(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(line, markStart) || bytes.HasPrefix(line, markEnd) {
			return true
		}
	}
	return false
}
