package config

import "time"

// Environment values accepted by ServiceConfig.Environment.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Default values for configuration fields.
const (
	// Service defaults
	DefaultEnvironment = EnvironmentProduction

	// Logging defaults
	DefaultLoggingLevel            = "info"
	DefaultLoggingLevelDevelopment = "debug"
	DefaultLoggingFormat           = "json"

	// Tracing defaults
	DefaultTracingEnabled = true
	DefaultTracingSampler = "always"

	// Metrics defaults
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"

	// Snapshot defaults
	DefaultSnapshotEnabled   = false
	DefaultSnapshotSchedule  = "@every 1m"
	DefaultSnapshotDirectory = "data/snapshots"

	// Health defaults
	DefaultHealthEnabled       = true
	DefaultHealthLivenessPath  = "/health"
	DefaultHealthReadinessPath = "/ready"
	DefaultHealthCheckTimeout  = 5 * time.Second
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Service defaults
	if cfg.Service.Environment == "" {
		cfg.Service.Environment = DefaultEnvironment
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		if cfg.IsDevelopment() {
			cfg.Telemetry.Logging.Level = DefaultLoggingLevelDevelopment
		} else {
			cfg.Telemetry.Logging.Level = DefaultLoggingLevel
		}
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	applyTracingEnabledDefault(&cfg.Telemetry.Tracing)

	// Metrics defaults
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	applyMetricsEnabledDefault(&cfg.Telemetry.Metrics)

	// Snapshot defaults
	if cfg.Telemetry.Snapshot.Schedule == "" {
		cfg.Telemetry.Snapshot.Schedule = DefaultSnapshotSchedule
	}
	if cfg.Telemetry.Snapshot.Directory == "" {
		cfg.Telemetry.Snapshot.Directory = DefaultSnapshotDirectory
	}

	// Health defaults
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultHealthLivenessPath
	}
	if cfg.Telemetry.Health.ReadinessPath == "" {
		cfg.Telemetry.Health.ReadinessPath = DefaultHealthReadinessPath
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
	applyHealthEnabledDefault(&cfg.Telemetry.Health)
}

// applyTracingEnabledDefault sets the tracing enabled default. The default
// is true, so the zero value is only overridden when no other tracing field
// was configured; an explicit enabled=false alongside a sampler or endpoint
// is respected.
func applyTracingEnabledDefault(cfg *TracingConfig) {
	if cfg.Enabled {
		return
	}
	hasAnyConfig := cfg.Sampler != DefaultTracingSampler ||
		cfg.SampleRate != 0 ||
		cfg.Endpoint != ""
	if !hasAnyConfig {
		cfg.Enabled = DefaultTracingEnabled
	}
}

// applyMetricsEnabledDefault sets the metrics enabled default (true) when
// no other metrics field was configured.
func applyMetricsEnabledDefault(cfg *MetricsConfig) {
	if cfg.Enabled {
		return
	}
	hasAnyConfig := cfg.Path != DefaultMetricsPath || cfg.Prefix != ""
	if !hasAnyConfig {
		cfg.Enabled = DefaultMetricsEnabled
	}
}

// applyHealthEnabledDefault sets the health enabled default (true) when
// no other health field was configured.
func applyHealthEnabledDefault(cfg *HealthConfig) {
	if cfg.Enabled {
		return
	}
	hasAnyConfig := cfg.LivenessPath != DefaultHealthLivenessPath ||
		cfg.ReadinessPath != DefaultHealthReadinessPath ||
		cfg.CheckTimeout != DefaultHealthCheckTimeout
	if !hasAnyConfig {
		cfg.Enabled = DefaultHealthEnabled
	}
}
