package address

import "github.com/agnivade/levenshtein"

// Similarity scores how alike two strings are, from 0 (nothing shared) to 1
// (identical), based on edit distance over the longer string's length.
// Callers use it to suggest candidates for unrecognized tokens; the parser
// itself never corrects spelling.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// Closest returns the candidate most similar to s and its score. The second
// return is false when there are no candidates.
func Closest(s string, candidates []string) (string, float64, bool) {
	var (
		best      string
		bestScore float64
		found     bool
	)
	for _, c := range candidates {
		score := Similarity(s, c)
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, bestScore, found
}
