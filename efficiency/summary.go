package efficiency

// ComparisonSummary aggregates statistics over a set of comparison results.
type ComparisonSummary struct {
	States       int
	Improved     int // Delta < 0: less fuel per unit generated in the second year
	Worsened     int // Delta > 0
	Unchanged    int
	MeanAbsDelta float64
	MaxAbsDelta  float64
	MaxState     string // state with the largest AbsDelta; empty when States == 0
}

// Summarize computes aggregate statistics from comparison results.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(results []StateEfficiency) *ComparisonSummary {
	summary := &ComparisonSummary{}
	if len(results) == 0 {
		return summary
	}

	summary.States = len(results)
	total := 0.0
	for _, r := range results {
		switch {
		case r.Delta < 0:
			summary.Improved++
		case r.Delta > 0:
			summary.Worsened++
		default:
			summary.Unchanged++
		}
		total += r.AbsDelta
		if summary.MaxState == "" || rankedBefore(r, StateEfficiency{State: summary.MaxState, AbsDelta: summary.MaxAbsDelta}) {
			summary.MaxAbsDelta = r.AbsDelta
			summary.MaxState = r.State
		}
	}
	summary.MeanAbsDelta = total / float64(len(results))

	return summary
}
