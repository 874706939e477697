package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is returned when the header row is missing or lacks one of the
// configured columns. It aborts the load.
var ErrSchema = errors.New("header does not match expected columns")

// Columns names the three header columns a dataset must provide.
type Columns struct {
	State      string `yaml:"state"`
	Fuel       string `yaml:"fuel"`
	Generation string `yaml:"generation"`
}

// DefaultColumns are the EIA-923 "Page 1 Generation and Fuel Data" headers.
// The published files break these headers over two lines; matching ignores
// that (see normalizeHeader).
func DefaultColumns() Columns {
	return Columns{
		State:      "Plant State",
		Fuel:       "Total Fuel Consumption MMBtu",
		Generation: "Net Generation (Megawatthours)",
	}
}

// columnIndex holds the positions of the configured columns within a header.
type columnIndex struct {
	state, fuel, generation int
}

// normalizeHeader collapses any run of whitespace (including embedded
// newlines) to a single space, drops a UTF-8 byte order mark and lowercases.
func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// locate finds the configured columns in header. When a name appears more than
// once the first occurrence wins.
func (c Columns) locate(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := positions[normalizeHeader(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	idx := columnIndex{
		state:      find(c.State),
		fuel:       find(c.Fuel),
		generation: find(c.Generation),
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("%w: missing %q", ErrSchema, missing)
	}
	return idx, nil
}

// record picks the configured columns out of a data row. ok is false when the
// row is too short to hold all three.
func (idx columnIndex) record(fields []string) (RawRecord, bool) {
	maxIdx := max(idx.state, idx.fuel, idx.generation)
	if maxIdx >= len(fields) {
		return RawRecord{}, false
	}
	return RawRecord{
		State:      fields[idx.state],
		Fuel:       fields[idx.fuel],
		Generation: fields[idx.generation],
	}, true
}
