// Package report renders ranked efficiency changes: a fixed-width console
// table for the top movers and a results file (CSV or XLSX) with every state.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gridstat/fuel-efficiency/efficiency"
)

// XLSXSheet is the worksheet name used for workbook output.
const XLSXSheet = "Efficiency"

// Labels name the two compared years in column headers, e.g. "2019" and "2020".
type Labels struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// Columns returns the results-file header row.
func (l Labels) Columns() []string {
	return []string{
		"State",
		"Efficiency_" + l.A,
		"Efficiency_" + l.B,
		"Delta_Efficiency",
		"Abs_Change",
	}
}

// PrintTop writes the first n ranked results as a fixed-width table with
// three decimals.
func PrintTop(w io.Writer, ranked []efficiency.StateEfficiency, n int, labels Labels) {
	top := efficiency.Top(ranked, n)

	fmt.Fprintf(w, "\nTop %d States by Change in Fossil Fuel Efficiency:\n\n", n)
	fmt.Fprintf(w, "%-10s %15s %15s %15s %15s\n",
		"State", "Eff_"+labels.A, "Eff_"+labels.B, "Change", "Abs Change")
	fmt.Fprintln(w, strings.Repeat("-", 75))
	for _, item := range top {
		fmt.Fprintf(w, "%-10s %15.3f %15.3f %15.3f %15.3f\n",
			item.State, item.EffA, item.EffB, item.Delta, item.AbsDelta)
	}
}

// formatValue renders v with six decimals, the precision of the results file.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func resultRow(item efficiency.StateEfficiency) []string {
	return []string{
		item.State,
		formatValue(item.EffA),
		formatValue(item.EffB),
		formatValue(item.Delta),
		formatValue(item.AbsDelta),
	}
}

// WriteCSV writes a header and one row per result, in the given order.
func WriteCSV(w io.Writer, ranked []efficiency.StateEfficiency, labels Labels) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(labels.Columns()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, item := range ranked {
		if err := cw.Write(resultRow(item)); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", item.State, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV to a single-sheet workbook.
// Values are stored as numbers; the six-decimal format is applied as a cell style.
func WriteXLSX(w io.Writer, ranked []efficiency.StateEfficiency, labels Labels) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := labels.Columns()
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing XLSX header: %w", err)
	}

	numFmt := "0.000000"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("creating number style: %w", err)
	}

	for i, item := range ranked {
		row := []interface{}{item.State, item.EffA, item.EffB, item.Delta, item.AbsDelta}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &row); err != nil {
			return fmt.Errorf("writing XLSX row for %s: %w", item.State, err)
		}
	}
	if len(ranked) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), len(ranked)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(XLSXSheet, "B2", last, style); err != nil {
			return fmt.Errorf("styling XLSX values: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveResults writes ranked results to path, as a workbook when the extension
// is .xlsx and as CSV otherwise. The file is replaced if it exists.
func SaveResults(path string, ranked []efficiency.StateEfficiency, labels Labels) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		err = WriteXLSX(file, ranked, labels)
	} else {
		err = WriteCSV(file, ranked, labels)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("saving results to %s: %w", path, err)
	}
	return nil
}
