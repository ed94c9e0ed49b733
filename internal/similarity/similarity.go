// Package similarity scores how alike two product names are using
// Levenshtein edit distance.
package similarity

// Distance returns the Levenshtein edit distance between a and b with unit
// cost for insertions, deletions and substitutions. Strings are compared
// rune by rune.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	// keep the shorter string on the row axis
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Score returns the normalized similarity of a and b in [0, 1]:
// (maxLen - Distance) / maxLen. Two empty strings score 1.
func Score(a, b string) float64 {
	longest := max(RuneLen(a), RuneLen(b))
	if longest == 0 {
		return 1.0
	}
	return float64(longest-Distance(a, b)) / float64(longest)
}

// UpperBound is the highest Score two strings of the given rune lengths can
// reach. Callers use it to skip pairs that cannot pass a threshold.
func UpperBound(lenA, lenB int) float64 {
	longest := max(lenA, lenB)
	if longest == 0 {
		return 1.0
	}
	return float64(min(lenA, lenB)) / float64(longest)
}

// RuneLen is the length Score measures strings in.
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
