package cmd

import (
	"fmt"

	"github.com/gridstat/fuel-efficiency/efficiency/ingest"
	"github.com/gridstat/fuel-efficiency/efficiency/report"
)

// Options is the fully resolved configuration of one comparison run.
type Options struct {
	YearA       string // path to the baseline year's dataset
	YearB       string // path to the comparison year's dataset
	Labels      report.Labels
	Output      string
	Top         int
	Parallel    bool
	MetricsFile string
	Ingest      ingest.Config
}

// flagOptions collects the current flag values.
func flagOptions() Options {
	return Options{
		YearA:       yearAPath,
		YearB:       yearBPath,
		Labels:      report.Labels{A: labelA, B: labelB},
		Output:      outputPath,
		Top:         topN,
		Parallel:    parallel,
		MetricsFile: metricsFile,
		Ingest: ingest.Config{
			PreambleLines: skipLines,
			Columns:       ingest.DefaultColumns(),
			Sheet:         sheetName,
		},
	}
}

// resolveOptions layers a config file under the flag values in opts. changed
// reports whether a flag was explicitly set; only those flags override file
// values, so a flag default never clobbers a configured value.
func resolveOptions(opts Options, file *FileConfig, changed func(name string) bool) (Options, error) {
	if file != nil {
		if file.PreambleLines != nil && !changed("skip-lines") {
			opts.Ingest.PreambleLines = *file.PreambleLines
		}
		if file.Sheet != "" && !changed("sheet") {
			opts.Ingest.Sheet = file.Sheet
		}
		if file.Top != nil && !changed("top") {
			opts.Top = *file.Top
		}
		if file.Output != "" && !changed("output") {
			opts.Output = file.Output
		}
		if file.Labels != nil {
			if file.Labels.A != "" && !changed("label-a") {
				opts.Labels.A = file.Labels.A
			}
			if file.Labels.B != "" && !changed("label-b") {
				opts.Labels.B = file.Labels.B
			}
		}
		opts.Ingest.Columns = mergeColumns(opts.Ingest.Columns, file.Columns)
	}

	if opts.YearA == "" || opts.YearB == "" {
		return Options{}, fmt.Errorf("both --year-a and --year-b dataset paths are required")
	}
	if opts.Ingest.PreambleLines < 0 {
		return Options{}, fmt.Errorf("--skip-lines must be >= 0, got %d", opts.Ingest.PreambleLines)
	}
	if opts.Top < 0 {
		return Options{}, fmt.Errorf("--top must be >= 0, got %d", opts.Top)
	}
	if opts.Labels.A == opts.Labels.B {
		return Options{}, fmt.Errorf("year labels must differ, both are %q", opts.Labels.A)
	}
	return opts, nil
}
