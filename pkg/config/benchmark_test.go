package config

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkLoadConfig measures a full load, default, and validate cycle.
func BenchmarkLoadConfig(b *testing.B) {
	path := filepath.Join(b.TempDir(), "lumen.yaml")
	content := "service:\n  name: \"bench\"\ntelemetry:\n  logging:\n    level: \"info\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		b.Fatalf("writing config: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadConfig(path); err != nil {
			b.Fatalf("LoadConfig() error = %v", err)
		}
	}
}

// BenchmarkApplyDefaults measures default application on a sparse config.
func BenchmarkApplyDefaults(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cfg := Config{}
		cfg.Service.Name = "svc"
		ApplyDefaults(&cfg)
	}
}

// BenchmarkValidate measures validation of a fully defaulted config.
func BenchmarkValidate(b *testing.B) {
	cfg := Config{}
	cfg.Service.Name = "svc"
	ApplyDefaults(&cfg)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Validate(&cfg); err != nil {
			b.Fatalf("Validate() error = %v", err)
		}
	}
}
