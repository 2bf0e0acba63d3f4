// Package logging provides level-filtered structured logging with trace
// correlation.
//
// # Overview
//
// The logging package is the log half of the Lumen observability SDK:
//   - Five totally ordered levels (debug, info, warn, error, fatal)
//   - Structured context fields with deterministic ordering
//   - Console, JSON, and custom destinations
//   - Trace-context tagging for log/trace correlation
//   - Optional secret redaction in field values
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Service: "checkout",
//	    Level:   "info",
//	})
//	if err != nil {
//	    // handle
//	}
//
//	logger.Info("Request processed", map[string]any{
//	    "route":       "/v1/charge",
//	    "duration_ms": 12,
//	})
//
// # Trace correlation
//
// A logger can tag every entry with the active traceId/spanId. The ambient
// binding mutates shared state and suits single-goroutine callers:
//
//	logger.SetTraceContext(span.TraceID(), span.SpanID())
//	defer logger.ClearTraceContext()
//
// Concurrent units of work should use the scoped form, which binds the
// context to a derived logger instead:
//
//	logger.WithTraceContext(traceID, spanID, func(l *logging.Logger) {
//	    l.Info("processing", nil)
//	})
//
// # Guarantees
//
// A logging call never panics and never returns an error. Values that
// cannot be marshaled are stringified best-effort. Calls below the minimum
// level return before allocating anything.
package logging
