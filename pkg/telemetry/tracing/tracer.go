package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"mercator-hq/lumen/pkg/telemetry/logging"

	"github.com/google/uuid"
)

// Config contains configuration for the Tracer.
type Config struct {
	// Service is the name of the instrumented service. Required.
	Service string

	// Endpoint is an opaque export destination. The tracer never dials it;
	// it only gates whether the OnEnd exporter hook is considered configured
	// in production mode.
	Endpoint string

	// Sampler is the sampling strategy: "always", "never", or "ratio".
	// Default: "always" (every StartSpan call yields a real span).
	Sampler string

	// SampleRate is the fraction of root StartSpan calls accepted when
	// Sampler is "ratio", in [0.0, 1.0].
	SampleRate float64

	// Development enables the one-line completion summary logged for every
	// finished span.
	// Default: false
	Development bool

	// Logger receives the development-mode completion summaries. When nil
	// they are suppressed.
	Logger *logging.Logger

	// OnEnd is the pluggable completion hook invoked with every finalized
	// span. This is the extension point where an exporter would hang; the
	// SDK specifies no wire protocol.
	OnEnd func(*Span)
}

// Tracer creates and completes spans forming trace trees.
// A Tracer is safe for concurrent use.
type Tracer struct {
	service     string
	endpoint    string
	sample      samplerFunc
	development bool
	logger      *logging.Logger
	onEnd       func(*Span)

	// active tracks spans between StartSpan and End, keyed by spanId.
	mu     sync.Mutex
	active map[string]*Span
}

// New creates a new Tracer with the given configuration.
func New(cfg Config) (*Tracer, error) {
	if cfg.Service == "" {
		return nil, errors.New("tracing: service name is required")
	}

	strategy := cfg.Sampler
	if strategy == "" {
		strategy = SamplerAlways
	}
	sample, err := newSampler(strategy, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}

	return &Tracer{
		service:     cfg.Service,
		endpoint:    cfg.Endpoint,
		sample:      sample,
		development: cfg.Development,
		logger:      cfg.Logger,
		onEnd:       cfg.OnEnd,
		active:      make(map[string]*Span),
	}, nil
}

// startOptions collects StartSpan options.
type startOptions struct {
	parent     *Span
	remote     *SpanContext
	attributes map[string]any
}

// StartOption configures a StartSpan call.
type StartOption func(*startOptions)

// WithParent links the new span under an in-process parent. The parent's
// traceId is inherited and its sampling decision propagates: a real parent
// forces a real child, a no-op parent forces a no-op child, so a trace is
// sampled uniformly.
func WithParent(parent *Span) StartOption {
	return func(o *startOptions) { o.parent = parent }
}

// WithRemoteParent links the new span under a parent extracted from an
// incoming request (see Extract). The remote sampled flag drives the
// sampling decision.
func WithRemoteParent(sc SpanContext) StartOption {
	return func(o *startOptions) { o.remote = &sc }
}

// WithAttributes seeds the span's initial attributes.
func WithAttributes(attrs map[string]any) StartOption {
	return func(o *startOptions) { o.attributes = attrs }
}

// StartSpan creates a new span.
//
// The sampling decision is drawn first; a rejected call returns the shared
// no-op span without allocating identifiers, attribute storage, or an event
// list. An accepted call inherits the parent's traceId when a parent is
// supplied, otherwise mints a fresh one, and always mints a fresh spanId.
func (t *Tracer) StartSpan(name string, opts ...StartOption) *Span {
	var o startOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !t.decide(&o) {
		return noopSpan
	}

	var traceID, parentID string
	switch {
	case o.parent != nil && !o.parent.noop:
		traceID = o.parent.TraceID()
		parentID = o.parent.SpanID()
	case o.remote != nil:
		traceID = o.remote.TraceID
		parentID = o.remote.SpanID
	default:
		traceID = newTraceID()
	}

	span := &Span{
		name:      name,
		traceID:   traceID,
		spanID:    newSpanID(),
		parentID:  parentID,
		startTime: time.Now(),
		status:    StatusUnset,
		onEnd:     t.finish,
	}
	if len(o.attributes) > 0 {
		span.attributes = make(map[string]any, len(o.attributes))
		for k, v := range o.attributes {
			span.attributes[k] = v
		}
	}

	t.mu.Lock()
	t.active[span.spanID] = span
	t.mu.Unlock()

	return span
}

// decide resolves the sampling decision for a StartSpan call. Parent
// decisions dominate the configured sampler so that a trace is either
// recorded in full or not at all.
func (t *Tracer) decide(o *startOptions) bool {
	if o.parent != nil {
		return !o.parent.noop
	}
	if o.remote != nil {
		return o.remote.Sampled
	}
	return t.sample()
}

// Trace runs fn inside a span and guarantees completion on every exit
// path. A nil error sets StatusOK; a non-nil error or a panic sets
// StatusError with the error's message (or "Unknown error" when the
// message is empty) and the original error or panic propagates to the
// caller unchanged. End runs in a deferred path in both cases.
//
// Cancellation is the caller's responsibility: ctx is handed to fn
// untouched, so an external timeout remains observable inside fn and the
// deferred completion still runs when fn returns the context error.
func (t *Tracer) Trace(ctx context.Context, name string, fn func(context.Context, *Span) error, opts ...StartOption) error {
	span := t.StartSpan(name, opts...)
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(StatusError, fmt.Sprintf("%v", r))
			panic(r)
		}
	}()

	err := fn(ctx, span)
	if err != nil {
		span.SetStatus(StatusError, errMessage(err))
	} else {
		span.SetStatus(StatusOK, "")
	}
	return err
}

// ActiveSpans returns the number of spans started but not yet ended.
func (t *Tracer) ActiveSpans() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// Service returns the configured service name.
func (t *Tracer) Service() string {
	return t.service
}

// finish is the completion callback wired into every real span. It runs
// exactly once per span: deregisters it, emits the development summary,
// and invokes the exporter hook when one is configured.
func (t *Tracer) finish(span *Span) {
	t.mu.Lock()
	delete(t.active, span.spanID)
	t.mu.Unlock()

	if t.development && t.logger != nil {
		t.logger.Debug(fmt.Sprintf("%s (%dms) trace=%s",
			span.Name(), span.Duration().Milliseconds(), shortTraceID(span.TraceID())), nil)
	}

	if t.onEnd != nil {
		t.onEnd(span)
	}
}

// shortTraceID returns the first 8 hex characters of a trace id.
func shortTraceID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// errMessage extracts a human-readable message from an error.
func errMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}

// newTraceID mints a 32-character lowercase hex trace identifier from a
// random UUID.
func newTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// newSpanID mints a 16-character lowercase hex span identifier. Collisions
// within a trace are possible only with negligible probability.
func newSpanID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// UUID-derived id rather than returning an invalid span.
		id := uuid.New()
		copy(b[:], id[:8])
	}
	return hex.EncodeToString(b[:])
}
