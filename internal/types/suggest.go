package types

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggest returns the candidate closest to name by edit distance, or
// an empty string when nothing is close enough to be a likely typo.
// The threshold scales with the name length so short names do not
// suggest unrelated bindings.
func suggest(name string, candidates []string) string {
	best := ""
	bestDist := len(name)/3 + 2
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
