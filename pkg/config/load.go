package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention LUMEN_SECTION_FIELD (e.g., LUMEN_TELEMETRY_LOGGING_LEVEL).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format LUMEN_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Service overrides
	if val := os.Getenv("LUMEN_SERVICE_NAME"); val != "" {
		cfg.Service.Name = val
	}
	if val := os.Getenv("LUMEN_SERVICE_ENVIRONMENT"); val != "" {
		cfg.Service.Environment = val
	}

	// Logging overrides
	if val := os.Getenv("LUMEN_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("LUMEN_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("LUMEN_TELEMETRY_LOGGING_REDACT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.Redact = b
		}
	}

	// Tracing overrides
	if val := os.Getenv("LUMEN_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("LUMEN_TELEMETRY_TRACING_SAMPLER"); val != "" {
		cfg.Telemetry.Tracing.Sampler = val
	}
	if val := os.Getenv("LUMEN_TELEMETRY_TRACING_SAMPLE_RATE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRate = f
		}
	}
	if val := os.Getenv("LUMEN_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}

	// Metrics overrides
	if val := os.Getenv("LUMEN_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("LUMEN_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := os.Getenv("LUMEN_TELEMETRY_METRICS_PREFIX"); val != "" {
		cfg.Telemetry.Metrics.Prefix = val
	}

	// Snapshot overrides
	if val := os.Getenv("LUMEN_TELEMETRY_SNAPSHOT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Snapshot.Enabled = b
		}
	}
	if val := os.Getenv("LUMEN_TELEMETRY_SNAPSHOT_SCHEDULE"); val != "" {
		cfg.Telemetry.Snapshot.Schedule = val
	}
	if val := os.Getenv("LUMEN_TELEMETRY_SNAPSHOT_DIRECTORY"); val != "" {
		cfg.Telemetry.Snapshot.Directory = val
	}

	// Health overrides
	if val := os.Getenv("LUMEN_TELEMETRY_HEALTH_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Health.Enabled = b
		}
	}
	if val := os.Getenv("LUMEN_TELEMETRY_HEALTH_LIVENESS_PATH"); val != "" {
		cfg.Telemetry.Health.LivenessPath = val
	}
	if val := os.Getenv("LUMEN_TELEMETRY_HEALTH_READINESS_PATH"); val != "" {
		cfg.Telemetry.Health.ReadinessPath = val
	}
	if val := os.Getenv("LUMEN_TELEMETRY_HEALTH_CHECK_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Telemetry.Health.CheckTimeout = d
		}
	}
}
