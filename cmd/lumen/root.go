package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen - structured logging, tracing, and metrics for services",
	Long: `Lumen is an observability SDK with a small standalone server.

It provides three correlated telemetry signals:
  - Structured, level-filtered logging with trace correlation
  - Distributed tracing with always/never/ratio sampling
  - Counters, gauges, and histograms with Prometheus exposition

The serve command runs the metrics and health endpoints as a process;
most users import the pkg/telemetry packages directly instead.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "lumen.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
