package health

import (
	"context"
	"fmt"
	"os"

	"mercator-hq/lumen/pkg/telemetry/metrics"
	"mercator-hq/lumen/pkg/telemetry/tracing"
)

// WritableDirectoryCheck verifies that dir exists (creating it if needed)
// and is writable. Useful for the snapshot output directory.
func WritableDirectoryCheck(dir string) CheckFunc {
	return func(ctx context.Context) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory %q: %w", dir, err)
		}
		f, err := os.CreateTemp(dir, ".healthcheck-*")
		if err != nil {
			return fmt.Errorf("directory %q is not writable: %w", dir, err)
		}
		name := f.Name()
		_ = f.Close()
		_ = os.Remove(name)
		return nil
	}
}

// ActiveSpanCheck flags a span leak: it fails when the tracer is holding
// more unfinished spans than maxActive.
func ActiveSpanCheck(tracer *tracing.Tracer, maxActive int) CheckFunc {
	return func(ctx context.Context) error {
		if tracer == nil {
			return fmt.Errorf("tracer not initialized")
		}
		if active := tracer.ActiveSpans(); active > maxActive {
			return fmt.Errorf("%d active spans exceeds limit of %d", active, maxActive)
		}
		return nil
	}
}

// RegistryCheck verifies the metrics registry is present and can render
// its exposition.
func RegistryCheck(registry *metrics.Registry) CheckFunc {
	return func(ctx context.Context) error {
		if registry == nil {
			return fmt.Errorf("metrics registry not initialized")
		}
		_ = registry.ToPrometheus()
		return nil
	}
}
