// Package config provides configuration management for the Lumen
// observability SDK.
//
// This package handles loading, validating, and watching configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("lumen.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("lumen.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention LUMEN_SECTION_FIELD.
// For example:
//
//   - LUMEN_SERVICE_NAME overrides service.name
//   - LUMEN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - LUMEN_TELEMETRY_TRACING_SAMPLE_RATE overrides telemetry.tracing.sample_rate
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Hot Reload
//
// A Watcher observes the configuration file and reloads it on change:
//
//	watcher, err := config.NewWatcher("lumen.yaml", logger)
//	if err != nil {
//	    return err
//	}
//	go watcher.Watch(ctx, func(cfg *config.Config) {
//	    // apply the new configuration
//	})
//
// Each successful reload also replaces the global singleton, so GetConfig
// always returns the last good configuration. A change that fails to parse
// or validate is logged and skipped; the previous configuration stays in
// effect.
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	service:
//	  name: "checkout"
//	  environment: "production"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  tracing:
//	    sampler: "ratio"
//	    sample_rate: 0.25
//	  metrics:
//	    path: "/metrics"
//	    prefix: "checkout"
//
// # Thread Safety
//
// The optional global singleton uses read-write locks so concurrent reads
// are safe while reload operations replace the instance.
package config
