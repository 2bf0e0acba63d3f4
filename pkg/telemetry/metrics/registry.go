package metrics

import (
	"errors"
	"sync"
)

// instrumentKind distinguishes the three instrument families sharing the
// registry.
type instrumentKind string

const (
	kindCounter   instrumentKind = "counter"
	kindGauge     instrumentKind = "gauge"
	kindHistogram instrumentKind = "histogram"
)

// series is one unique (instrument, label set) combination. Counters and
// gauges accumulate into value; histograms append raw samples. Series live
// for the lifetime of the registry.
type series struct {
	key     string
	labels  map[string]string
	value   float64
	samples []float64
}

// instrument is a named counter, gauge, or histogram family. Series are
// kept both in creation order (for stable exposition) and indexed by
// canonical key (for lookup).
type instrument struct {
	name    string
	kind    instrumentKind
	ordered []*series
	byKey   map[string]*series
}

// Config contains configuration for the Registry.
type Config struct {
	// Service is the name of the owning service. Required.
	Service string

	// Endpoint is an opaque export destination, recorded for the benefit of
	// external publishers; the registry itself performs no I/O.
	Endpoint string

	// Prefix is prepended to every instrument name with an underscore
	// separator when non-empty.
	Prefix string
}

// Registry holds in-memory counters, gauges, and histograms keyed by
// canonicalized label sets. Instruments are created on first reference by
// name and series on first label combination; neither is ever evicted.
// All operations are safe for concurrent use and never fail for valid
// numeric input.
type Registry struct {
	service  string
	endpoint string
	prefix   string

	mu          sync.Mutex
	instruments []*instrument
	byName      map[string]*instrument
}

// New creates a new Registry with the given configuration.
func New(cfg Config) (*Registry, error) {
	if cfg.Service == "" {
		return nil, errors.New("metrics: service name is required")
	}
	return &Registry{
		service:  cfg.Service,
		endpoint: cfg.Endpoint,
		prefix:   cfg.Prefix,
		byName:   make(map[string]*instrument),
	}, nil
}

// Service returns the configured service name.
func (r *Registry) Service() string { return r.service }

// Endpoint returns the configured export destination.
func (r *Registry) Endpoint() string { return r.endpoint }

// fullName applies the configured prefix to an instrument name.
func (r *Registry) fullName(name string) string {
	if r.prefix == "" {
		return name
	}
	return r.prefix + "_" + name
}

// lookup returns the instrument for a name, creating it on first
// reference. A name already registered under a different kind returns nil;
// the mismatched handle's operations become inert rather than corrupting
// the existing family. Caller must hold r.mu.
func (r *Registry) lookup(name string, kind instrumentKind) *instrument {
	full := r.fullName(name)
	if inst, ok := r.byName[full]; ok {
		if inst.kind != kind {
			return nil
		}
		return inst
	}
	inst := &instrument{
		name:  full,
		kind:  kind,
		byKey: make(map[string]*series),
	}
	r.byName[full] = inst
	r.instruments = append(r.instruments, inst)
	return inst
}

// getSeries returns the series for a label set, creating it at zero on
// first use. Caller must hold r.mu.
func (inst *instrument) getSeries(labels map[string]string) *series {
	key := canonicalKey(inst.name, labels)
	if s, ok := inst.byKey[key]; ok {
		return s
	}
	s := &series{key: key, labels: copyLabels(labels)}
	inst.byKey[key] = s
	inst.ordered = append(inst.ordered, s)
	return s
}

// Counter returns a handle to the named counter family, creating it on
// first reference.
func (r *Registry) Counter(name string) *Counter {
	return &Counter{registry: r, name: name}
}

// Gauge returns a handle to the named gauge family, creating it on first
// reference.
func (r *Registry) Gauge(name string) *Gauge {
	return &Gauge{registry: r, name: name}
}

// Histogram returns a handle to the named histogram family, creating it on
// first reference.
func (r *Registry) Histogram(name string) *Histogram {
	return &Histogram{registry: r, name: name}
}

// Counter is a monotonic per-series accumulator.
type Counter struct {
	registry *Registry
	name     string
}

// Inc adds 1 to the series identified by the label set.
func (c *Counter) Inc(labels map[string]string) {
	c.Add(1, labels)
}

// Add adds value to the series identified by the label set, creating it at
// 0 if absent. Values are conventionally non-negative; the registry does
// not reject negative deltas but the exposition contract assumes
// monotonicity.
func (c *Counter) Add(value float64, labels map[string]string) {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()
	inst := c.registry.lookup(c.name, kindCounter)
	if inst == nil {
		return
	}
	inst.getSeries(labels).value += value
}

// Gauge is a last-set value, adjustable up and down.
type Gauge struct {
	registry *Registry
	name     string
}

// Set overwrites the series value.
func (g *Gauge) Set(value float64, labels map[string]string) {
	g.registry.mu.Lock()
	defer g.registry.mu.Unlock()
	inst := g.registry.lookup(g.name, kindGauge)
	if inst == nil {
		return
	}
	inst.getSeries(labels).value = value
}

// Add adjusts the series value by delta, creating it at 0 if absent.
func (g *Gauge) Add(delta float64, labels map[string]string) {
	g.registry.mu.Lock()
	defer g.registry.mu.Unlock()
	inst := g.registry.lookup(g.name, kindGauge)
	if inst == nil {
		return
	}
	inst.getSeries(labels).value += delta
}

// Inc adds 1 to the series value.
func (g *Gauge) Inc(labels map[string]string) {
	g.Add(1, labels)
}

// Dec subtracts 1 from the series value.
func (g *Gauge) Dec(labels map[string]string) {
	g.Add(-1, labels)
}

// Histogram records raw observed values per series. No bucket boundaries
// are configured; count and sum are derived from the raw sequence.
type Histogram struct {
	registry *Registry
	name     string
}

// Observe appends value to the series' sample sequence.
func (h *Histogram) Observe(value float64, labels map[string]string) {
	h.registry.mu.Lock()
	defer h.registry.mu.Unlock()
	inst := h.registry.lookup(h.name, kindHistogram)
	if inst == nil {
		return
	}
	s := inst.getSeries(labels)
	s.samples = append(s.samples, value)
}
