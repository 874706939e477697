package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gridstat/fuel-efficiency/efficiency"
	"github.com/gridstat/fuel-efficiency/efficiency/ingest"
	"github.com/gridstat/fuel-efficiency/efficiency/metrics"
	"github.com/gridstat/fuel-efficiency/efficiency/report"
)

const metricsNamespace = "fuel_efficiency"

// loadBoth loads the two datasets, sequentially or as a fork-join. Each load
// owns its own StateMap; results are combined only after both finish, and the
// first failure aborts the run.
func loadBoth(loader *ingest.Loader, opts Options) (a, b *ingest.LoadResult, err error) {
	if !opts.Parallel {
		logrus.Infof("Loading %s data...", opts.Labels.A)
		if a, err = loader.Load(opts.Labels.A, opts.YearA); err != nil {
			return nil, nil, err
		}
		logrus.Infof("Loading %s data...", opts.Labels.B)
		if b, err = loader.Load(opts.Labels.B, opts.YearB); err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}

	logrus.Infof("Loading %s and %s data in parallel...", opts.Labels.A, opts.Labels.B)
	var g errgroup.Group
	g.Go(func() error {
		var loadErr error
		a, loadErr = loader.Load(opts.Labels.A, opts.YearA)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		b, loadErr = loader.Load(opts.Labels.B, opts.YearB)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// runComparison loads both years, ranks the per-state changes, prints the top
// movers to out and saves the full ranking. It returns the ranked results.
func runComparison(opts Options, out io.Writer) ([]efficiency.StateEfficiency, error) {
	collector := metrics.NewCollector(metricsNamespace)
	loader := ingest.NewLoader(opts.Ingest, collector)

	statsA, statsB, err := loadBoth(loader, opts)
	if err != nil {
		return nil, err
	}

	logrus.Info("Computing efficiency changes...")
	ranked := efficiency.Rank(efficiency.Compare(statsA.Stats, statsB.Stats))

	summary := efficiency.Summarize(ranked)
	collector.RecordComparison(summary.States, summary.MaxAbsDelta)
	logrus.Infof("Compared %d states: %d improved, %d worsened, %d unchanged; mean |change| %.3f, largest %s (%.3f)",
		summary.States, summary.Improved, summary.Worsened, summary.Unchanged,
		summary.MeanAbsDelta, summary.MaxState, summary.MaxAbsDelta)
	if excluded := statsA.Stats.States() - summary.States; excluded > 0 {
		logrus.Debugf("%d %s states excluded (missing from %s or zero generation)", excluded, opts.Labels.A, opts.Labels.B)
	}

	report.PrintTop(out, ranked, opts.Top, opts.Labels)

	logrus.Infof("Saving full results to %q...", opts.Output)
	if err := report.SaveResults(opts.Output, ranked, opts.Labels); err != nil {
		return nil, err
	}

	if opts.MetricsFile != "" {
		if err := collector.WriteTextfile(opts.MetricsFile); err != nil {
			return nil, fmt.Errorf("exporting metrics: %w", err)
		}
	}

	logrus.Info("Done.")
	return ranked, nil
}
