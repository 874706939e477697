package efficiency

// StateStats holds the running totals for one state within one dataset year.
// Both fields start at zero and only ever accumulate.
type StateStats struct {
	TotalFuel float64
	TotalGen  float64
}

// StateMap maps a state code to its totals. An entry exists only once at least
// one accepted row has contributed to it.
type StateMap map[string]*StateStats

// Accumulate adds fuel and gen to the entry for state, creating a zero-valued
// entry first if needed. Calling it twice with the same row counts the row twice.
func (m StateMap) Accumulate(state string, fuel, gen float64) {
	entry, ok := m[state]
	if !ok {
		entry = &StateStats{}
		m[state] = entry
	}
	entry.TotalFuel += fuel
	entry.TotalGen += gen
}

// States returns the number of states with at least one accepted row.
func (m StateMap) States() int {
	return len(m)
}
