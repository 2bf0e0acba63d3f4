package tracing

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

var (
	traceIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)
	spanIDPattern  = regexp.MustCompile(`^[0-9a-f]{16}$`)
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "defaults", config: Config{Service: "svc"}, wantErr: false},
		{name: "ratio sampler", config: Config{Service: "svc", Sampler: SamplerRatio, SampleRate: 0.5}, wantErr: false},
		{name: "never sampler", config: Config{Service: "svc", Sampler: SamplerNever}, wantErr: false},
		{name: "missing service", config: Config{}, wantErr: true},
		{name: "unknown sampler", config: Config{Service: "svc", Sampler: "coin-flip"}, wantErr: true},
		{name: "ratio out of range", config: Config{Service: "svc", Sampler: SamplerRatio, SampleRate: 1.5}, wantErr: true},
		{name: "negative ratio", config: Config{Service: "svc", Sampler: SamplerRatio, SampleRate: -0.1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTracer_StartSpan_Identifiers(t *testing.T) {
	tracer := newTestTracer(t, Config{})

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		span := tracer.StartSpan("op")

		if !traceIDPattern.MatchString(span.TraceID()) {
			t.Fatalf("malformed trace id: %q", span.TraceID())
		}
		if !spanIDPattern.MatchString(span.SpanID()) {
			t.Fatalf("malformed span id: %q", span.SpanID())
		}
		if _, dup := seen[span.SpanID()]; dup {
			t.Fatalf("duplicate span id: %q", span.SpanID())
		}
		seen[span.SpanID()] = struct{}{}
		span.End()
	}
}

func TestTracer_StartSpan_ParentLinking(t *testing.T) {
	tracer := newTestTracer(t, Config{})

	parent := tracer.StartSpan("parent")
	child := tracer.StartSpan("child", WithParent(parent))
	defer child.End()
	defer parent.End()

	if child.TraceID() != parent.TraceID() {
		t.Errorf("child traceId %q != parent traceId %q", child.TraceID(), parent.TraceID())
	}
	if child.ParentID() != parent.SpanID() {
		t.Errorf("child parentId %q != parent spanId %q", child.ParentID(), parent.SpanID())
	}
	if child.SpanID() == parent.SpanID() {
		t.Error("child reused the parent's span id")
	}
	if parent.ParentID() != "" {
		t.Errorf("root span has a parent id: %q", parent.ParentID())
	}
}

func TestTracer_StartSpan_SeedAttributes(t *testing.T) {
	tracer := newTestTracer(t, Config{})
	span := tracer.StartSpan("op", WithAttributes(map[string]any{"provider": "openai"}))
	defer span.End()

	if span.Attributes()["provider"] != "openai" {
		t.Errorf("seed attribute missing: %v", span.Attributes())
	}
}

func TestTracer_SamplingNever(t *testing.T) {
	tracer := newTestTracer(t, Config{Sampler: SamplerRatio, SampleRate: 0})

	for i := 0; i < 20; i++ {
		if span := tracer.StartSpan("op"); span != NoopSpan() {
			t.Fatal("sample rate 0 produced a real span")
		}
	}
}

func TestTracer_SamplingAlways(t *testing.T) {
	tracer := newTestTracer(t, Config{Sampler: SamplerRatio, SampleRate: 1})

	for i := 0; i < 20; i++ {
		span := tracer.StartSpan("op")
		if span == NoopSpan() {
			t.Fatal("sample rate 1 produced a no-op span")
		}
		span.End()
	}
}

func TestTracer_ParentDecisionDominates(t *testing.T) {
	// Sampling decisions are uniform across a trace: the parent's fate
	// carries to children regardless of the configured sampler.
	never := newTestTracer(t, Config{Sampler: SamplerNever})
	always := newTestTracer(t, Config{})

	realParent := always.StartSpan("parent")
	defer realParent.End()

	if child := never.StartSpan("child", WithParent(realParent)); child == NoopSpan() {
		t.Error("child of a sampled parent was dropped")
	} else {
		child.End()
	}

	if child := always.StartSpan("child", WithParent(NoopSpan())); child != NoopSpan() {
		t.Error("child of an unsampled parent was recorded")
		child.End()
	}
}

func TestTracer_ActiveSpans(t *testing.T) {
	tracer := newTestTracer(t, Config{})

	if tracer.ActiveSpans() != 0 {
		t.Fatalf("ActiveSpans() = %d at start", tracer.ActiveSpans())
	}

	a := tracer.StartSpan("a")
	b := tracer.StartSpan("b")
	if tracer.ActiveSpans() != 2 {
		t.Errorf("ActiveSpans() = %d, want 2", tracer.ActiveSpans())
	}

	a.End()
	b.End()
	if tracer.ActiveSpans() != 0 {
		t.Errorf("ActiveSpans() = %d after End, want 0", tracer.ActiveSpans())
	}
}

func TestTracer_Trace_Success(t *testing.T) {
	var completed []*Span
	tracer := newTestTracer(t, Config{OnEnd: func(s *Span) { completed = append(completed, s) }})

	err := tracer.Trace(context.Background(), "op", func(ctx context.Context, span *Span) error {
		span.SetAttribute("step", 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}

	if len(completed) != 1 {
		t.Fatalf("completion hook fired %d times, want 1", len(completed))
	}
	status, _ := completed[0].Status()
	if status != StatusOK {
		t.Errorf("status = %v, want ok", status)
	}
	if completed[0].EndTime().IsZero() {
		t.Error("span not ended")
	}
}

func TestTracer_Trace_Error(t *testing.T) {
	var completed []*Span
	tracer := newTestTracer(t, Config{OnEnd: func(s *Span) { completed = append(completed, s) }})

	boom := errors.New("x")
	err := tracer.Trace(context.Background(), "op", func(context.Context, *Span) error {
		return boom
	})

	if err != boom {
		t.Errorf("Trace() returned %v, want the original error", err)
	}
	if len(completed) != 1 {
		t.Fatalf("completion hook fired %d times, want 1", len(completed))
	}
	status, msg := completed[0].Status()
	if status != StatusError || msg != "x" {
		t.Errorf("status = %v, %q; want error, \"x\"", status, msg)
	}
}

func TestTracer_Trace_Panic(t *testing.T) {
	var completed []*Span
	tracer := newTestTracer(t, Config{OnEnd: func(s *Span) { completed = append(completed, s) }})

	func() {
		defer func() {
			if r := recover(); r != "kaboom" {
				t.Errorf("recovered %v, want the original panic value", r)
			}
		}()
		_ = tracer.Trace(context.Background(), "op", func(context.Context, *Span) error {
			panic("kaboom")
		})
	}()

	if len(completed) != 1 {
		t.Fatalf("completion hook fired %d times, want 1", len(completed))
	}
	status, msg := completed[0].Status()
	if status != StatusError || msg != "kaboom" {
		t.Errorf("status = %v, %q", status, msg)
	}
}

func TestTracer_Trace_Cancellation(t *testing.T) {
	var completed []*Span
	tracer := newTestTracer(t, Config{OnEnd: func(s *Span) { completed = append(completed, s) }})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tracer.Trace(ctx, "op", func(ctx context.Context, span *Span) error {
		return ctx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Trace() error = %v, want context.Canceled", err)
	}
	if len(completed) != 1 {
		t.Fatalf("cancelled operation did not complete its span")
	}
	if status, _ := completed[0].Status(); status != StatusError {
		t.Errorf("status = %v, want error", status)
	}
}

func TestTracer_Trace_Unsampled(t *testing.T) {
	var completions int
	tracer := newTestTracer(t, Config{Sampler: SamplerNever, OnEnd: func(*Span) { completions++ }})

	err := tracer.Trace(context.Background(), "op", func(ctx context.Context, span *Span) error {
		if span != NoopSpan() {
			t.Error("unsampled Trace handed fn a real span")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	if completions != 0 {
		t.Errorf("completion hook fired %d times for an unsampled trace", completions)
	}
}
