package config

import "time"

// Config is the root configuration for the Lumen observability SDK.
// It is typically loaded from a YAML file via LoadConfig or
// LoadConfigWithEnvOverrides.
type Config struct {
	// Service contains service identity configuration shared by all
	// telemetry signals.
	Service ServiceConfig `yaml:"service"`

	// Telemetry contains per-signal configuration for logging, tracing,
	// metrics, snapshots, and health endpoints.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServiceConfig identifies the service emitting telemetry.
type ServiceConfig struct {
	// Name is the service name attached to every log entry, span, and
	// metrics registry. Required.
	Name string `yaml:"name"`

	// Environment is the deployment environment.
	// Options: "development", "production"
	// Default: "production"
	Environment string `yaml:"environment"`
}

// TelemetryConfig contains configuration for all telemetry signals.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Snapshot contains scheduled metrics snapshot configuration.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Health contains health check endpoint configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error", "fatal"
	// Default: "info" ("debug" when the environment is "development")
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// Redact enables scrubbing of API keys, bearer tokens, and URL
	// credentials from log output.
	// Default: false
	Redact bool `yaml:"redact"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active. When disabled, the
	// tracer still hands out spans but samples none of them.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRate is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	SampleRate float64 `yaml:"sample_rate"`

	// Endpoint is an optional collector endpoint recorded on the tracer.
	// Completed spans are logged locally; no export protocol is spoken.
	Endpoint string `yaml:"endpoint"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Prefix is prepended (with an underscore) to every metric name.
	// Default: "" (no prefix)
	Prefix string `yaml:"prefix"`
}

// SnapshotConfig contains scheduled metrics snapshot configuration.
// When enabled, the current Prometheus exposition is rendered on a cron
// schedule and written to the snapshot directory.
type SnapshotConfig struct {
	// Enabled controls whether scheduled snapshots run.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Schedule is the cron expression driving snapshot renders.
	// Accepts standard five-field cron specs and @every intervals.
	// Default: "@every 1m"
	Schedule string `yaml:"schedule"`

	// Directory is where snapshot files are written.
	// Default: "data/snapshots"
	Directory string `yaml:"directory"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health check endpoints are served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// CheckTimeout is the timeout for individual component health checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// IsDevelopment reports whether the configured environment is "development".
func (c *Config) IsDevelopment() bool {
	return c.Service.Environment == EnvironmentDevelopment
}
