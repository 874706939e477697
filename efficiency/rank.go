package efficiency

import (
	"math"
	"sort"
)

// Rank returns a copy of results sorted by AbsDelta descending. Equal
// magnitudes are ordered by state code ascending, and NaN magnitudes sort
// after every number, so the order is total and deterministic.
// The input slice is left untouched.
func Rank(results []StateEfficiency) []StateEfficiency {
	ranked := make([]StateEfficiency, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedBefore(ranked[i], ranked[j])
	})
	return ranked
}

func rankedBefore(x, y StateEfficiency) bool {
	xNaN, yNaN := math.IsNaN(x.AbsDelta), math.IsNaN(y.AbsDelta)
	switch {
	case xNaN && !yNaN:
		return false
	case !xNaN && yNaN:
		return true
	case !xNaN && x.AbsDelta != y.AbsDelta:
		return x.AbsDelta > y.AbsDelta
	}
	return x.State < y.State
}

// Top returns the first n entries of a ranked slice, or all of them if there
// are fewer than n. A non-positive n yields an empty slice.
func Top(ranked []StateEfficiency, n int) []StateEfficiency {
	if n <= 0 {
		return []StateEfficiency{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
