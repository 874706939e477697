package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawRecord is one data row reduced to the three columns of interest, still untyped.
type RawRecord struct {
	State      string
	Fuel       string // may contain thousands separators, e.g. "1,234.5"
	Generation string
}

// Row is a RawRecord that passed parsing.
type Row struct {
	State      string
	Fuel       float64
	Generation float64
}

// RejectReason classifies why a data row was skipped. Reasons are only ever
// reduced to counts.
type RejectReason string

const (
	ReasonDecode         RejectReason = "decode_error"    // row does not fit the header's column structure
	ReasonParse          RejectReason = "parse_error"     // fuel or generation is not a finite number
	ReasonZeroGeneration RejectReason = "zero_generation" // generation is exactly zero
)

// RowError is returned for a row that must be skipped. It is never fatal.
type RowError struct {
	Reason RejectReason
	Field  string
	Value  string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s=%q", e.Reason, e.Field, e.Value)
}

// ParseRow converts a raw record into a typed row. Grouping commas are removed
// from the numeric fields before conversion. Rows whose fuel or generation is
// not a finite number, or whose generation is exactly zero, are rejected with a
// *RowError. The state code is trimmed of surrounding whitespace, so " TX"
// and "TX" aggregate under one key.
func ParseRow(raw RawRecord) (Row, error) {
	fuel, err := parseNumber(raw.Fuel)
	if err != nil {
		return Row{}, &RowError{Reason: ReasonParse, Field: "fuel", Value: raw.Fuel}
	}
	gen, err := parseNumber(raw.Generation)
	if err != nil {
		return Row{}, &RowError{Reason: ReasonParse, Field: "generation", Value: raw.Generation}
	}
	if gen == 0 {
		return Row{}, &RowError{Reason: ReasonZeroGeneration, Field: "generation", Value: raw.Generation}
	}
	return Row{
		State:      strings.TrimSpace(raw.State),
		Fuel:       fuel,
		Generation: gen,
	}, nil
}

// parseNumber strips grouping separators and surrounding whitespace, then parses
// a float. NaN and infinities are refused so every accepted total stays finite.
func parseNumber(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", text)
	}
	return v, nil
}
