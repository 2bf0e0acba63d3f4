package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"mercator-hq/lumen/pkg/config"
	"mercator-hq/lumen/pkg/telemetry/health"
	"mercator-hq/lumen/pkg/telemetry/logging"
	"mercator-hq/lumen/pkg/telemetry/metrics"
	"mercator-hq/lumen/pkg/telemetry/snapshot"
	"mercator-hq/lumen/pkg/telemetry/tracing"
)

// maxHealthyActiveSpans is the span-leak threshold for the built-in tracer
// readiness check.
const maxHealthyActiveSpans = 10_000

// Telemetry bundles the configured logger, tracer, metrics registry, health
// checker, and snapshot scheduler for a service.
type Telemetry struct {
	cfg       *config.Config
	logger    *logging.Logger
	tracer    *tracing.Tracer
	registry  *metrics.Registry
	checker   *health.Checker
	scheduler *snapshot.Scheduler
}

// New builds all telemetry components from a validated configuration.
func New(cfg *config.Config) (*Telemetry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if cfg.Service.Name == "" {
		return nil, fmt.Errorf("service name is required")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	tracer, err := newTracer(cfg, logger)
	if err != nil {
		return nil, err
	}

	// The scrape path is a mount concern (see Mount); the registry's
	// Endpoint is reserved for an export destination and stays empty.
	registry, err := metrics.New(metrics.Config{
		Service: cfg.Service.Name,
		Prefix:  cfg.Telemetry.Metrics.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build metrics registry: %w", err)
	}

	t := &Telemetry{
		cfg:      cfg,
		logger:   logger,
		tracer:   tracer,
		registry: registry,
	}

	if cfg.Telemetry.Snapshot.Enabled {
		t.scheduler, err = snapshot.New(snapshot.Config{
			Registry:  registry,
			Schedule:  cfg.Telemetry.Snapshot.Schedule,
			Directory: cfg.Telemetry.Snapshot.Directory,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build snapshot scheduler: %w", err)
		}
	}

	if cfg.Telemetry.Health.Enabled {
		t.checker = health.New(cfg.Telemetry.Health.CheckTimeout)
		t.checker.RegisterCheck("metrics", health.RegistryCheck(registry))
		t.checker.RegisterCheck("tracer", health.ActiveSpanCheck(tracer, maxHealthyActiveSpans))
		if cfg.Telemetry.Snapshot.Enabled {
			t.checker.RegisterCheck("snapshots", health.WritableDirectoryCheck(cfg.Telemetry.Snapshot.Directory))
		}
	}

	return t, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	destination := logging.DestinationJSON
	pretty := false
	if cfg.Telemetry.Logging.Format == "console" {
		destination = logging.DestinationConsole
		pretty = true
	}

	logger, err := logging.New(logging.Config{
		Service:     cfg.Service.Name,
		Level:       cfg.Telemetry.Logging.Level,
		Pretty:      pretty,
		Destination: destination,
		Development: cfg.IsDevelopment(),
		Redact:      cfg.Telemetry.Logging.Redact,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func newTracer(cfg *config.Config, logger *logging.Logger) (*tracing.Tracer, error) {
	sampler := cfg.Telemetry.Tracing.Sampler
	if !cfg.Telemetry.Tracing.Enabled {
		sampler = tracing.SamplerNever
	}

	tracer, err := tracing.New(tracing.Config{
		Service:     cfg.Service.Name,
		Endpoint:    cfg.Telemetry.Tracing.Endpoint,
		Sampler:     sampler,
		SampleRate:  cfg.Telemetry.Tracing.SampleRate,
		Development: cfg.IsDevelopment(),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build tracer: %w", err)
	}
	return tracer, nil
}

// Logger returns the configured logger.
func (t *Telemetry) Logger() *logging.Logger { return t.logger }

// Tracer returns the configured tracer.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// Metrics returns the configured metrics registry.
func (t *Telemetry) Metrics() *metrics.Registry { return t.registry }

// Health returns the health checker, or nil when health endpoints are
// disabled.
func (t *Telemetry) Health() *health.Checker { return t.checker }

// Snapshots returns the snapshot scheduler, or nil when snapshots are
// disabled.
func (t *Telemetry) Snapshots() *snapshot.Scheduler { return t.scheduler }

// Start launches background work (currently the snapshot scheduler).
func (t *Telemetry) Start() error {
	if t.scheduler != nil {
		if err := t.scheduler.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown stops background work and flushes what can be flushed. It honors
// the context deadline for the final snapshot render.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.scheduler != nil {
		done := make(chan struct{})
		go func() {
			t.scheduler.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	t.logger.Info("telemetry shut down", map[string]any{"service": t.cfg.Service.Name})
	return nil
}

// Mount registers the configured HTTP surface on mux: the metrics endpoint
// and the health probe endpoints, each at its configured path.
func (t *Telemetry) Mount(mux *http.ServeMux, version, commit, buildTime string) {
	if t.cfg.Telemetry.Metrics.Enabled {
		mux.Handle(t.cfg.Telemetry.Metrics.Path, t.registry.Handler())
	}
	if t.checker != nil {
		t.checker.Mount(mux, health.MountOptions{
			LivenessPath:  t.cfg.Telemetry.Health.LivenessPath,
			ReadinessPath: t.cfg.Telemetry.Health.ReadinessPath,
			Version:       version,
			Commit:        commit,
			BuildTime:     buildTime,
		})
	}
}

// Middleware wraps next with request tracing: incoming traceparent headers
// are honored, a server span covers the handler, and the response carries
// an X-Trace-ID header for sampled requests.
func (t *Telemetry) Middleware(next http.Handler) http.Handler {
	return tracing.HTTPMiddleware(t.tracer, next)
}
