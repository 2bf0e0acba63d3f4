package tracing

import (
	"net/http"
	"strings"
)

// W3C Trace Context propagation (https://www.w3.org/TR/trace-context/).
//
// The traceparent header carries trace context across service boundaries:
//
//	traceparent: version-trace_id-parent_id-trace_flags
//	example:     00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// Bit 0 of the flags byte is the sampled flag. An extracted context is
// handed to StartSpan via WithRemoteParent, so the upstream sampling
// decision carries through the local trace.

// TraceParentHeader is the W3C trace context header name.
const TraceParentHeader = "traceparent"

// traceParentVersion is the only version this SDK emits.
const traceParentVersion = "00"

// SpanContext is the propagated identity of a span: just the identifiers
// and the sampled flag, without the span's mutable state.
type SpanContext struct {
	// TraceID is the 32-character lowercase hex trace identifier.
	TraceID string

	// SpanID is the 16-character lowercase hex span identifier.
	SpanID string

	// Sampled reports whether the originating trace was sampled.
	Sampled bool
}

// IsValid reports whether the context carries well-formed identifiers.
func (sc SpanContext) IsValid() bool {
	return len(sc.TraceID) == 32 && isHexString(sc.TraceID) && sc.TraceID != zeroTraceID &&
		len(sc.SpanID) == 16 && isHexString(sc.SpanID) && sc.SpanID != zeroSpanID
}

const (
	zeroTraceID = "00000000000000000000000000000000"
	zeroSpanID  = "0000000000000000"
)

// Context returns the span's propagated identity. A real span is sampled
// by construction; the no-op span yields an invalid context.
func (s *Span) Context() SpanContext {
	if s.noop {
		return SpanContext{}
	}
	return SpanContext{TraceID: s.traceID, SpanID: s.spanID, Sampled: true}
}

// Inject writes the span's trace context into HTTP headers. Called on the
// client side before an outgoing request:
//
//	req, _ := http.NewRequestWithContext(ctx, "POST", url, body)
//	tracing.Inject(span, req.Header)
//
// Injecting the no-op span writes nothing: an unsampled call must not
// propagate an empty traceId downstream.
func Inject(span *Span, headers http.Header) {
	sc := span.Context()
	if !sc.IsValid() {
		return
	}
	flags := "00"
	if sc.Sampled {
		flags = "01"
	}
	headers.Set(TraceParentHeader, traceParentVersion+"-"+sc.TraceID+"-"+sc.SpanID+"-"+flags)
}

// Extract reads trace context from incoming HTTP headers. Called on the
// server side; the result feeds WithRemoteParent:
//
//	if sc, ok := tracing.Extract(r.Header); ok {
//	    span = tracer.StartSpan("handle", tracing.WithRemoteParent(sc))
//	}
//
// ok is false when the header is absent or malformed.
func Extract(headers http.Header) (SpanContext, bool) {
	traceparent := headers.Get(TraceParentHeader)
	if traceparent == "" {
		return SpanContext{}, false
	}
	_, traceID, parentID, flags, valid := ParseTraceParent(traceparent)
	if !valid {
		return SpanContext{}, false
	}
	return SpanContext{
		TraceID: traceID,
		SpanID:  parentID,
		Sampled: sampledFlag(flags),
	}, true
}

// sampledFlag reports whether bit 0 of the hex flags byte is set.
func sampledFlag(flags string) bool {
	last := flags[len(flags)-1]
	var nibble byte
	switch {
	case last >= '0' && last <= '9':
		nibble = last - '0'
	case last >= 'a' && last <= 'f':
		nibble = last - 'a' + 10
	}
	return nibble&0x01 == 0x01
}

// HTTPMiddleware wraps a handler so every request runs inside a span. An
// incoming traceparent header links the request span under the remote
// parent; the response carries X-Trace-ID for debugging. The span status
// follows the response code (5xx maps to error).
func HTTPMiddleware(tracer *Tracer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts := []StartOption{WithAttributes(map[string]any{
			"http.method": r.Method,
			"http.target": r.URL.Path,
		})}
		if sc, ok := Extract(r.Header); ok {
			opts = append(opts, WithRemoteParent(sc))
		}

		span := tracer.StartSpan(r.Method+" "+r.URL.Path, opts...)
		defer span.End()

		if sc := span.Context(); sc.IsValid() {
			w.Header().Set("X-Trace-ID", sc.TraceID)
		}

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		span.SetAttribute("http.status_code", rw.status)
		if rw.status >= http.StatusInternalServerError {
			span.SetStatus(StatusError, http.StatusText(rw.status))
		} else {
			span.SetStatus(StatusOK, "")
		}
	})
}

// statusRecorder captures the response status code for span attribution.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ValidateTraceParent reports whether a traceparent header is well formed:
// version (2 hex), trace id (32 hex, not all zeros), parent id (16 hex,
// not all zeros), flags (2 hex), dash separated.
func ValidateTraceParent(traceparent string) bool {
	parts := strings.Split(traceparent, "-")
	if len(parts) != 4 {
		return false
	}
	if len(parts[0]) != 2 || !isHexString(parts[0]) {
		return false
	}
	if len(parts[1]) != 32 || !isHexString(parts[1]) || parts[1] == zeroTraceID {
		return false
	}
	if len(parts[2]) != 16 || !isHexString(parts[2]) || parts[2] == zeroSpanID {
		return false
	}
	if len(parts[3]) != 2 || !isHexString(parts[3]) {
		return false
	}
	return true
}

// ParseTraceParent splits a traceparent header into its components.
// valid is false, and every component empty, for a malformed header.
func ParseTraceParent(traceparent string) (version, traceID, parentID, flags string, valid bool) {
	if !ValidateTraceParent(traceparent) {
		return "", "", "", "", false
	}
	parts := strings.Split(traceparent, "-")
	return parts[0], parts[1], parts[2], parts[3], true
}

// isHexString checks whether a string contains only lowercase hex digits.
// Uppercase is rejected: identifiers are specified as lowercase hex.
func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
