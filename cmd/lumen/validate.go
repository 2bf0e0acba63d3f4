package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/lumen/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a Lumen configuration file.

Defaults are applied before validation, so a file only needs the fields it
overrides. All validation errors are reported together.

Examples:
  lumen validate --config lumen.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("%s: %d problem(s)\n", cfgFile, len(verr.Errors))
			for _, fieldErr := range verr.Errors {
				fmt.Printf("  - %s\n", fieldErr.Error())
			}
			return fmt.Errorf("configuration invalid")
		}
		return err
	}

	fmt.Printf("%s: valid\n", cfgFile)
	if verbose {
		fmt.Printf("  service:  %s (%s)\n", cfg.Service.Name, cfg.Service.Environment)
		fmt.Printf("  logging:  level=%s format=%s\n", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
		fmt.Printf("  tracing:  enabled=%t sampler=%s\n", cfg.Telemetry.Tracing.Enabled, cfg.Telemetry.Tracing.Sampler)
		fmt.Printf("  metrics:  enabled=%t path=%s\n", cfg.Telemetry.Metrics.Enabled, cfg.Telemetry.Metrics.Path)
		fmt.Printf("  snapshot: enabled=%t schedule=%q\n", cfg.Telemetry.Snapshot.Enabled, cfg.Telemetry.Snapshot.Schedule)
	}
	return nil
}
