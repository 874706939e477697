// Package ingest loads one year of per-plant records into per-state totals.
// It tolerates malformed data rows by skipping and counting them; only an
// unreadable source or an unusable header aborts a load.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridstat/fuel-efficiency/efficiency"
)

// DefaultPreambleLines is the number of metadata lines that precede the
// header in EIA-923 exports.
const DefaultPreambleLines = 5

// Observer receives per-row and per-load outcomes. metrics.Collector
// satisfies it.
type Observer interface {
	RowAccepted(dataset string)
	RowRejected(dataset, reason string)
	DatasetLoaded(dataset string, states int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) RowAccepted(string) {}
func (nopObserver) RowRejected(string, string) {}
func (nopObserver) DatasetLoaded(string, int, time.Duration) {}

// Config controls how a dataset source is interpreted.
type Config struct {
	PreambleLines int     // lines (or worksheet rows) discarded before the header
	Columns       Columns // header names of the state, fuel and generation columns
	Sheet         string  // worksheet for XLSX sources; empty means the first sheet
}

// DefaultConfig returns the settings for EIA-923 exports.
func DefaultConfig() Config {
	return Config{
		PreambleLines: DefaultPreambleLines,
		Columns:       DefaultColumns(),
	}
}

// LoadResult is the outcome of loading one dataset.
type LoadResult struct {
	Stats      efficiency.StateMap
	Valid      int
	Skipped    int
	Rejections map[RejectReason]int
}

// Loader drives row parsing and per-state aggregation over a dataset source.
// A Loader holds no per-run state and may be shared by concurrent loads.
type Loader struct {
	config   Config
	observer Observer
}

// NewLoader creates a Loader. A nil observer disables row-level reporting.
func NewLoader(config Config, observer Observer) *Loader {
	if observer == nil {
		observer = nopObserver{}
	}
	if config.PreambleLines < 0 {
		config.PreambleLines = 0
	}
	return &Loader{config: config, observer: observer}
}

// Load opens path and loads it, choosing CSV or XLSX from the file extension.
// label names the dataset in logs and metrics (typically the year).
func (l *Loader) Load(label, path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	result, err := l.LoadReader(label, FormatFromPath(path), file)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return result, nil
}

// LoadReader loads a dataset from r. Malformed data rows are skipped and
// counted. It fails only when r cannot be read or the header lacks one of the
// configured columns (errors.Is(err, ErrSchema)).
func (l *Loader) LoadReader(label string, format Format, r io.Reader) (*LoadResult, error) {
	start := time.Now()

	src, err := l.open(format, r)
	if err != nil {
		return nil, err
	}
	defer src.Close() //nolint:errcheck // read-only source

	header, err := src.Header()
	if err != nil {
		return nil, err
	}
	logrus.Debugf("%s headers: %q", label, header)

	idx, err := l.config.Columns.locate(header)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{
		Stats:      efficiency.StateMap{},
		Rejections: make(map[RejectReason]int),
	}
	reject := func(reason RejectReason) {
		result.Skipped++
		result.Rejections[reason]++
		l.observer.RowRejected(label, string(reason))
	}

	for {
		fields, err := src.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, errRowDecode) {
			reject(ReasonDecode)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s data rows: %w", label, err)
		}

		raw, ok := idx.record(fields)
		if !ok {
			reject(ReasonDecode)
			continue
		}
		row, err := ParseRow(raw)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				reject(rowErr.Reason)
			} else {
				reject(ReasonParse)
			}
			continue
		}

		result.Stats.Accumulate(row.State, row.Fuel, row.Generation)
		result.Valid++
		l.observer.RowAccepted(label)
	}

	logrus.Infof("%s: parsed %d valid rows | skipped %d rows", label, result.Valid, result.Skipped)
	if result.Valid == 0 {
		logrus.Warnf("%s: no valid rows; every state will be excluded from the comparison", label)
	}
	l.observer.DatasetLoaded(label, result.Stats.States(), time.Since(start))

	return result, nil
}

func (l *Loader) open(format Format, r io.Reader) (rowSource, error) {
	switch format {
	case FormatXLSX:
		return newXLSXSource(r, l.config.Sheet, l.config.PreambleLines)
	case FormatCSV:
		return newCSVSource(r, l.config.PreambleLines)
	}
	return nil, fmt.Errorf("unsupported dataset format %d", format)
}
