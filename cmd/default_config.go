package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridstat/fuel-efficiency/efficiency/ingest"
	"github.com/gridstat/fuel-efficiency/efficiency/report"
)

// FileConfig is the optional YAML configuration passed with --config.
// Unset fields keep their defaults; flags set on the command line win over
// file values.
type FileConfig struct {
	PreambleLines *int            `yaml:"preamble_lines,omitempty"`
	Sheet         string          `yaml:"sheet,omitempty"`
	Top           *int            `yaml:"top,omitempty"`
	Output        string          `yaml:"output,omitempty"`
	Labels        *report.Labels  `yaml:"labels,omitempty"`
	Columns       *ingest.Columns `yaml:"columns,omitempty"`
}

// defaultFileConfig is the configuration used when --config is not given.
func defaultFileConfig() FileConfig {
	preamble := ingest.DefaultPreambleLines
	top := defaultTopN
	columns := ingest.DefaultColumns()
	return FileConfig{
		PreambleLines: &preamble,
		Top:           &top,
		Output:        defaultOutputPath,
		Labels:        &report.Labels{A: defaultLabelA, B: defaultLabelB},
		Columns:       &columns,
	}
}

// loadFileConfig parses a config file with strict field checking: unknown
// keys are errors so typos never silently fall back to defaults.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.PreambleLines != nil && *cfg.PreambleLines < 0 {
		return nil, fmt.Errorf("config %s: preamble_lines must be >= 0, got %d", path, *cfg.PreambleLines)
	}
	if cfg.Top != nil && *cfg.Top < 0 {
		return nil, fmt.Errorf("config %s: top must be >= 0, got %d", path, *cfg.Top)
	}
	return &cfg, nil
}

// mergeColumns fills names missing from override with those of base.
func mergeColumns(base ingest.Columns, override *ingest.Columns) ingest.Columns {
	if override == nil {
		return base
	}
	if override.State != "" {
		base.State = override.State
	}
	if override.Fuel != "" {
		base.Fuel = override.Fuel
	}
	if override.Generation != "" {
		base.Generation = override.Generation
	}
	return base
}
