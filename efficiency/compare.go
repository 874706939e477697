package efficiency

import "math"

// StateEfficiency is the comparison result for a single state.
// EffA and EffB are fuel/generation ratios for the first and second year;
// Delta is EffB - EffA and AbsDelta its magnitude.
type StateEfficiency struct {
	State    string
	EffA     float64
	EffB     float64
	Delta    float64
	AbsDelta float64
}

// newStateEfficiency derives the ratios and deltas from one state's totals.
// Callers guarantee both TotalGen values are nonzero.
func newStateEfficiency(state string, a, b *StateStats) StateEfficiency {
	effA := a.TotalFuel / a.TotalGen
	effB := b.TotalFuel / b.TotalGen
	delta := effB - effA
	return StateEfficiency{
		State:    state,
		EffA:     effA,
		EffB:     effB,
		Delta:    delta,
		AbsDelta: math.Abs(delta),
	}
}

// Compare joins two years' totals on state code and computes the efficiency
// change for every state present in both maps with nonzero generation in both
// years. States missing from either map, or with zero total generation in
// either year, produce no result. The order of the returned slice is
// unspecified; use Rank to order it.
func Compare(a, b StateMap) []StateEfficiency {
	results := make([]StateEfficiency, 0, len(a))
	for state, statsA := range a {
		statsB, ok := b[state]
		if !ok {
			continue
		}
		if statsA.TotalGen == 0 || statsB.TotalGen == 0 {
			continue
		}
		results = append(results, newStateEfficiency(state, statsA, statsB))
	}
	return results
}
