// Package tracing provides a lightweight distributed-tracing span model
// with sampling, attributes, events, and W3C trace context propagation.
//
// # Overview
//
// The tracing package is the trace half of the Lumen observability SDK:
//   - Spans with 128-bit trace ids and 64-bit span ids (lowercase hex)
//   - Parent-linked spans forming a trace tree
//   - Always/never/ratio sampling, uniform across a trace
//   - A shared zero-allocation no-op span for unsampled calls
//   - A scoped-execution helper that guarantees span completion
//   - traceparent header propagation and HTTP middleware
//
// # Usage
//
//	tracer, err := tracing.New(tracing.Config{
//	    Service: "checkout",
//	    Sampler: tracing.SamplerRatio,
//	    SampleRate: 0.1,
//	})
//
//	span := tracer.StartSpan("charge_card",
//	    tracing.WithAttributes(map[string]any{"provider": "stripe"}))
//	defer span.End()
//
// # Scoped execution
//
// Trace wraps an operation so the span is completed on every exit path,
// including panics, with the status derived from the outcome:
//
//	err := tracer.Trace(ctx, "charge_card", func(ctx context.Context, span *tracing.Span) error {
//	    span.AddEvent("authorizing", nil)
//	    return chargeCard(ctx)
//	})
//
// The original error propagates to the caller unchanged.
//
// # Sampling
//
// The sampling decision is drawn once per root span. Child spans created
// with WithParent follow the parent's decision, so an entire trace is
// either recorded or skipped. Unsampled calls return one shared no-op span
// whose mutators are inert and whose End has no side effect.
//
// # Export
//
// The SDK ships no exporter. Every finalized span is handed to the
// pluggable OnEnd hook; transport, retry, and drop policy belong to the
// hook's implementation.
package tracing
