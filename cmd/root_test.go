package cmd

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridstat/fuel-efficiency/efficiency/ingest"
	"github.com/gridstat/fuel-efficiency/efficiency/report"
)

const preamble = "PAGE 1 GENERATION AND FUEL DATA\nEIA-923\nSources: EIA-923 and EIA-860 Reports\nReleased\n\n"

const header = "Plant Id,Plant State,\"Total Fuel Consumption\nMMBtu\",\"Net Generation\n(Megawatthours)\"\n"

// Year A: TX 1000/100 = 10, CA 300/100 = 3, NY only here, WV zero generation.
const yearA = preamble + header +
	"1,TX,\"1,000\",100\n" +
	"2,CA,300,100\n" +
	"3,NY,50,10\n" +
	"4,WV,10,0\n" +
	"5,OH,bad,1\n"

// Year B: TX 800/100 = 8, CA 350/100 = 3.5, WA only here.
const yearB = preamble + header +
	"1,TX,800,100\n" +
	"2,CA,350,100\n" +
	"3,WA,20,10\n"

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	pathA := filepath.Join(dir, "2019.csv")
	pathB := filepath.Join(dir, "2020.csv")
	require.NoError(t, os.WriteFile(pathA, []byte(yearA), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte(yearB), 0o644))
	return Options{
		YearA:  pathA,
		YearB:  pathB,
		Labels: report.Labels{A: "2019", B: "2020"},
		Output: filepath.Join(dir, "efficiency_changes.csv"),
		Top:    10,
		Ingest: ingest.DefaultConfig(),
	}
}

func TestRunComparison_EndToEnd(t *testing.T) {
	// GIVEN two EIA-style datasets
	opts := testOptions(t)
	opts.MetricsFile = filepath.Join(filepath.Dir(opts.Output), "fuel.prom")
	var stdout bytes.Buffer

	// WHEN the comparison runs
	ranked, err := runComparison(opts, &stdout)

	// THEN only states valid in both years are ranked, largest change first
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "TX", ranked[0].State)
	assert.InDelta(t, -2.0, ranked[0].Delta, 1e-9)
	assert.Equal(t, "CA", ranked[1].State)

	// AND the console table lists them
	assert.Contains(t, stdout.String(), "Top 10 States by Change in Fossil Fuel Efficiency")
	assert.Contains(t, stdout.String(), "TX")

	// AND the results file holds the full ranking at six decimals
	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"TX", "10.000000", "8.000000", "-2.000000", "2.000000"}, records[1])
	assert.Equal(t, []string{"CA", "3.000000", "3.500000", "0.500000", "0.500000"}, records[2])

	// AND the metrics textfile records row outcomes
	prom, err := os.ReadFile(opts.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `fuel_efficiency_rows_total{dataset="2019",outcome="skipped"} 2`)
	assert.Contains(t, string(prom), `fuel_efficiency_rows_total{dataset="2019",outcome="valid"} 3`)
	assert.Contains(t, string(prom), "fuel_efficiency_compared_states 2")
}

func TestRunComparison_ParallelMatchesSequential(t *testing.T) {
	opts := testOptions(t)
	sequential, err := runComparison(opts, &bytes.Buffer{})
	require.NoError(t, err)

	opts.Parallel = true
	concurrent, err := runComparison(opts, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, sequential, concurrent)
}

func TestRunComparison_XLSXOutput(t *testing.T) {
	opts := testOptions(t)
	opts.Output = strings.TrimSuffix(opts.Output, ".csv") + ".xlsx"

	_, err := runComparison(opts, &bytes.Buffer{})

	require.NoError(t, err)
	info, err := os.Stat(opts.Output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunComparison_MissingDataset_NoOutput(t *testing.T) {
	// GIVEN a missing year-B file
	opts := testOptions(t)
	opts.YearB = filepath.Join(t.TempDir(), "missing.csv")

	// WHEN the comparison runs
	_, err := runComparison(opts, &bytes.Buffer{})

	// THEN it fails and writes no results file
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, statErr := os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunComparison_BadHeader_SchemaError(t *testing.T) {
	opts := testOptions(t)
	require.NoError(t, os.WriteFile(opts.YearA, []byte(preamble+"State,Fuel\nTX,1\n"), 0o644))

	for _, par := range []bool{false, true} {
		opts.Parallel = par
		_, err := runComparison(opts, &bytes.Buffer{})

		require.Error(t, err, "parallel=%v", par)
		assert.True(t, errors.Is(err, ingest.ErrSchema), "parallel=%v", par)
	}
}

func TestResolveOptions_FlagsOverrideConfigOnlyWhenChanged(t *testing.T) {
	// GIVEN a config file and flag values where only --top was set explicitly
	preambleLines, top := 3, 25
	file := &FileConfig{
		PreambleLines: &preambleLines,
		Top:           &top,
		Output:        "out.xlsx",
		Labels:        &report.Labels{A: "2021"},
		Columns:       &ingest.Columns{State: "State Code"},
	}
	base := Options{
		YearA:  "a.csv",
		YearB:  "b.csv",
		Labels: report.Labels{A: defaultLabelA, B: defaultLabelB},
		Output: defaultOutputPath,
		Top:    7,
		Ingest: ingest.DefaultConfig(),
	}
	changed := func(name string) bool { return name == "top" }

	// WHEN resolved
	opts, err := resolveOptions(base, file, changed)

	// THEN the explicit flag wins and the file fills the rest
	require.NoError(t, err)
	assert.Equal(t, 7, opts.Top)
	assert.Equal(t, 3, opts.Ingest.PreambleLines)
	assert.Equal(t, "out.xlsx", opts.Output)
	assert.Equal(t, report.Labels{A: "2021", B: defaultLabelB}, opts.Labels)
	assert.Equal(t, "State Code", opts.Ingest.Columns.State)
	assert.Equal(t, ingest.DefaultColumns().Fuel, opts.Ingest.Columns.Fuel)
}

func TestResolveOptions_Validation(t *testing.T) {
	never := func(string) bool { return false }
	valid := Options{
		YearA:  "a.csv",
		YearB:  "b.csv",
		Labels: report.Labels{A: "2019", B: "2020"},
		Ingest: ingest.DefaultConfig(),
	}

	_, err := resolveOptions(valid, nil, never)
	require.NoError(t, err)

	missing := valid
	missing.YearB = ""
	_, err = resolveOptions(missing, nil, never)
	assert.Error(t, err)

	sameLabels := valid
	sameLabels.Labels.B = "2019"
	_, err = resolveOptions(sameLabels, nil, never)
	assert.Error(t, err)

	negative := valid
	negative.Top = -1
	_, err = resolveOptions(negative, nil, never)
	assert.Error(t, err)
}

func TestConfigCommand_PrintsDefaults(t *testing.T) {
	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	defer configCmd.SetOut(nil)

	configCmd.Run(configCmd, nil)

	out := buf.String()
	assert.Contains(t, out, "preamble_lines: 5")
	assert.Contains(t, out, "Plant State")
	assert.Contains(t, out, "top: 10")
}
