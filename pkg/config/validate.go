package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"mercator-hq/lumen/pkg/telemetry/logging"
	"mercator-hq/lumen/pkg/telemetry/tracing"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g., "telemetry.tracing.sample_rate").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateService(&cfg.Service)...)
	errs = append(errs, validateLogging(&cfg.Telemetry.Logging)...)
	errs = append(errs, validateTracing(&cfg.Telemetry.Tracing)...)
	errs = append(errs, validateMetrics(&cfg.Telemetry.Metrics)...)
	errs = append(errs, validateSnapshot(&cfg.Telemetry.Snapshot)...)
	errs = append(errs, validateHealth(&cfg.Telemetry.Health)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateService validates service identity configuration.
func validateService(cfg *ServiceConfig) []FieldError {
	var errs []FieldError

	if cfg.Name == "" {
		errs = append(errs, FieldError{
			Field:   "service.name",
			Message: "service name is required",
		})
	}

	if cfg.Environment != "" &&
		cfg.Environment != EnvironmentDevelopment &&
		cfg.Environment != EnvironmentProduction {
		errs = append(errs, FieldError{
			Field:   "service.environment",
			Message: fmt.Sprintf("must be %q or %q, got %q", EnvironmentDevelopment, EnvironmentProduction, cfg.Environment),
		})
	}

	return errs
}

// validateLogging validates logging configuration.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	if cfg.Level != "" {
		if _, err := logging.ParseLevel(cfg.Level); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.logging.level",
				Message: err.Error(),
			})
		}
	}

	if cfg.Format != "" && cfg.Format != "json" && cfg.Format != "console" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be \"json\" or \"console\", got %q", cfg.Format),
		})
	}

	return errs
}

// validateTracing validates tracing configuration.
func validateTracing(cfg *TracingConfig) []FieldError {
	var errs []FieldError

	if cfg.Sampler != "" {
		if err := tracing.ValidateSampler(cfg.Sampler, cfg.SampleRate); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: err.Error(),
			})
		}
	}

	return errs
}

// validateMetrics validates metrics configuration.
func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if cfg.Path != "" && !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "path must start with /",
		})
	}

	return errs
}

// validateSnapshot validates snapshot scheduling configuration.
func validateSnapshot(cfg *SnapshotConfig) []FieldError {
	var errs []FieldError

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.snapshot.schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	if cfg.Enabled && cfg.Directory == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.snapshot.directory",
			Message: "directory is required when snapshots are enabled",
		})
	}

	return errs
}

// validateHealth validates health endpoint configuration.
func validateHealth(cfg *HealthConfig) []FieldError {
	var errs []FieldError

	if cfg.LivenessPath != "" && !strings.HasPrefix(cfg.LivenessPath, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.liveness_path",
			Message: "path must start with /",
		})
	}
	if cfg.ReadinessPath != "" && !strings.HasPrefix(cfg.ReadinessPath, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.readiness_path",
			Message: "path must start with /",
		})
	}
	if cfg.LivenessPath != "" && cfg.LivenessPath == cfg.ReadinessPath {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.readiness_path",
			Message: "liveness and readiness paths must differ",
		})
	}
	if cfg.CheckTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.health.check_timeout",
			Message: "check timeout must not be negative",
		})
	}

	return errs
}
