package main

import (
	"path/filepath"
	"testing"

	"mercator-hq/lumen/pkg/config"
)

func TestLoadDemoConfig_FallbackWhenFileAbsent(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()
	cfgFile = filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := loadDemoConfig()
	if err != nil {
		t.Fatalf("loadDemoConfig() error = %v", err)
	}
	if cfg.Service.Name != "lumen-demo" {
		t.Errorf("fallback Service.Name = %q, want lumen-demo", cfg.Service.Name)
	}
	if cfg.Telemetry.Metrics.Path == "" {
		t.Error("fallback config missing defaults")
	}
	if config.GetConfig() != cfg {
		t.Error("global configuration not seeded by the fallback")
	}
}

func TestLoadDemoConfig_InvalidFileRejected(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()
	cfgFile = writeTempConfig(t, "telemetry:\n  logging:\n    level: \"verbose\"\n")

	if _, err := loadDemoConfig(); err == nil {
		t.Error("loadDemoConfig() accepted an invalid config file")
	}
}
