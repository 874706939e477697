package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gridstat/fuel-efficiency/efficiency/ingest"
)

const (
	defaultTopN       = 10
	defaultOutputPath = "efficiency_changes.csv"
	defaultLabelA     = "2019"
	defaultLabelB     = "2020"
)

var (
	// CLI flags for the compared datasets
	yearAPath string // Baseline year's EIA-923 export (CSV or XLSX)
	yearBPath string // Comparison year's EIA-923 export
	labelA    string // Name of the baseline year in logs and column headers
	labelB    string // Name of the comparison year
	skipLines int    // Non-tabular lines before the header row
	sheetName string // Worksheet to read from XLSX sources

	// CLI flags for output and run behaviour
	outputPath  string // Results file (.csv or .xlsx)
	topN        int    // Rows in the console summary table
	configPath  string // Optional YAML config file
	parallel    bool   // Load both datasets concurrently
	metricsFile string // Prometheus textfile destination
	logLevel    string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fuel-efficiency",
	Short: "Year-over-year fossil-fuel generation efficiency change per U.S. state",
}

// compareCmd loads two years of plant data and ranks states by efficiency change
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank states by change in fuel consumed per MWh between two years",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		var file *FileConfig
		if configPath != "" {
			if file, err = loadFileConfig(configPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		opts, err := resolveOptions(flagOptions(), file, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		if wd, err := os.Getwd(); err == nil {
			logrus.Debugf("Running from: %s", wd)
		}
		if _, err := runComparison(opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
	},
}

// configCmd prints the built-in configuration as YAML, a starting point for --config
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := yaml.Marshal(defaultFileConfig())
		if err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	compareCmd.Flags().StringVar(&yearAPath, "year-a", "", "Path to the baseline year's dataset (.csv or .xlsx)")
	compareCmd.Flags().StringVar(&yearBPath, "year-b", "", "Path to the comparison year's dataset (.csv or .xlsx)")
	compareCmd.Flags().StringVar(&labelA, "label-a", defaultLabelA, "Label for the baseline year")
	compareCmd.Flags().StringVar(&labelB, "label-b", defaultLabelB, "Label for the comparison year")
	compareCmd.Flags().IntVar(&skipLines, "skip-lines", ingest.DefaultPreambleLines, "Number of non-tabular lines before the header row")
	compareCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to read from XLSX datasets (default: first sheet)")
	_ = compareCmd.MarkFlagRequired("year-a")
	_ = compareCmd.MarkFlagRequired("year-b")

	compareCmd.Flags().StringVar(&outputPath, "output", defaultOutputPath, "Results file; .xlsx writes a workbook, anything else CSV")
	compareCmd.Flags().IntVar(&topN, "top", defaultTopN, "Number of states shown in the console summary")
	compareCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file (print the defaults with the config command)")
	compareCmd.Flags().BoolVar(&parallel, "parallel", false, "Load both datasets concurrently")
	compareCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	compareCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(configCmd)
}
