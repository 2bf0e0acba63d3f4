package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mercator-hq/lumen/pkg/telemetry/logging"
	"mercator-hq/lumen/pkg/telemetry/metrics"
)

// DefaultSchedule renders a snapshot once per minute.
const DefaultSchedule = "@every 1m"

// snapshotTimeFormat names snapshot files so they sort chronologically.
const snapshotTimeFormat = "20060102T150405"

// Config contains configuration for the snapshot scheduler.
type Config struct {
	// Registry is the metrics registry to snapshot. Required.
	Registry *metrics.Registry

	// Schedule is the cron expression driving snapshot renders.
	// Accepts standard five-field cron specs and @every intervals.
	// Default: "@every 1m"
	Schedule string

	// Directory is where the default file publisher writes snapshots.
	// Required unless Publish is set.
	Directory string

	// Publish overrides the default file publisher. It receives the
	// rendered Prometheus exposition for each tick. Errors are logged
	// and the scheduler keeps running.
	Publish func(exposition string) error

	// Logger receives scheduler activity. Optional.
	Logger *logging.Logger
}

// Scheduler renders the registry's Prometheus exposition on a cron
// schedule and hands it to a publisher.
type Scheduler struct {
	registry *metrics.Registry
	schedule string
	publish  func(string) error
	logger   *logging.Logger
	cron     *cron.Cron

	mu      sync.Mutex
	running bool
}

// New creates a snapshot scheduler. The schedule is validated eagerly so a
// bad expression fails at construction rather than at Start.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", cfg.Schedule, err)
	}

	publish := cfg.Publish
	if publish == nil {
		if cfg.Directory == "" {
			return nil, fmt.Errorf("directory is required when no publisher is set")
		}
		publish = filePublisher(cfg.Directory)
	}

	return &Scheduler{
		registry: cfg.Registry,
		schedule: cfg.Schedule,
		publish:  publish,
		logger:   cfg.Logger,
		cron:     cron.New(),
	}, nil
}

// Start begins scheduled snapshots. It returns immediately; renders happen
// on the cron goroutine.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("snapshot scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Snapshot(); err != nil && s.logger != nil {
			s.logger.Error("metrics snapshot failed", nil, err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule snapshots: %w", err)
	}

	s.cron.Start()
	s.running = true

	if s.logger != nil {
		s.logger.Info("snapshot scheduler started", map[string]any{"schedule": s.schedule})
	}
	return nil
}

// Stop halts the schedule and waits for an in-flight snapshot to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	if s.logger != nil {
		s.logger.Info("snapshot scheduler stopped", nil)
	}
}

// Snapshot renders the current exposition and publishes it once. It is
// safe to call directly, independent of the schedule.
func (s *Scheduler) Snapshot() error {
	exposition := s.registry.ToPrometheus()
	if err := s.publish(exposition); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("metrics snapshot published", map[string]any{"bytes": len(exposition)})
	}
	return nil
}

// filePublisher writes each exposition to a timestamped .prom file in dir,
// creating the directory on first use.
func filePublisher(dir string) func(string) error {
	return func(exposition string) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory %q: %w", dir, err)
		}
		name := fmt.Sprintf("metrics-%s.prom", time.Now().UTC().Format(snapshotTimeFormat))
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(exposition), 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot %q: %w", path, err)
		}
		return nil
	}
}
