// Package knowledge implements the retrieval and ranking engine over the
// restaurant knowledge sources, and the formatter that turns ranked matches
// into a single spoken reply.
package knowledge

import (
	"github.com/agnivade/levenshtein"
)

// Ratio returns a 0-100 similarity score between two strings based on
// Levenshtein edit distance.
func Ratio(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	longer := la
	if lb > longer {
		longer = lb
	}
	return (100*(longer-dist) + longer/2) / longer
}

// PartialRatio returns the best Ratio of the shorter string against every
// equally long substring of the longer one. A short query fully contained in
// a long question therefore scores 100.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	shorter, longer := ra, rb
	if len(rb) < len(ra) {
		shorter, longer = rb, ra
	}

	best := 0
	window := len(shorter)
	for i := 0; i+window <= len(longer); i++ {
		score := Ratio(string(shorter), string(longer[i:i+window]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}
