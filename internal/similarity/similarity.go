// Package similarity scores how alike two line sequences are.
package similarity

// Score returns the proportion of shared lines between a and b, in [0,1]:
// the longest-common-subsequence length divided by the longer sequence's
// length. Symmetric, and 1 for identical sequences (including both empty).
func Score(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1
	}
	return float64(lcsLength(a, b)) / float64(longer)
}

// lcsLength computes LCS length with a rolling single-row table.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
