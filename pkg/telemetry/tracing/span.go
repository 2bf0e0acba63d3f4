package tracing

import (
	"sync"
	"time"
)

// Status is the terminal disposition of a span.
type Status string

const (
	// StatusUnset is the initial status of every span.
	StatusUnset Status = "unset"

	// StatusOK marks a span as completed successfully.
	StatusOK Status = "ok"

	// StatusError marks a span as failed.
	StatusError Status = "error"
)

// statusMessageKey is the reserved attribute under which the error status
// message is recorded.
const statusMessageKey = "status.message"

// Event is a named, timestamped annotation on a span.
type Event struct {
	// Name identifies the event.
	Name string

	// Time is when the event was added.
	Time time.Time

	// Attributes holds optional event metadata.
	Attributes map[string]any
}

// Span is a timed unit of work within a trace. A span is owned by its
// Tracer until End is called, after which it is frozen: every mutator
// becomes a no-op. All methods are safe for concurrent use.
//
// Mutators return the span itself so calls can be chained:
//
//	span.SetAttribute("provider", "openai").
//	    AddEvent("cache_miss", nil).
//	    SetStatus(tracing.StatusOK, "")
//
// Attribute values should be strings, numbers, or booleans.
type Span struct {
	name     string
	traceID  string
	spanID   string
	parentID string

	startTime time.Time

	// noop marks the shared inert span handed out for unsampled calls.
	noop bool

	mu            sync.Mutex
	endTime       time.Time
	ended         bool
	attributes    map[string]any
	events        []Event
	status        Status
	statusMessage string
	onEnd         func(*Span)
}

// noopSpan is the single shared span returned for every unsampled
// StartSpan call. It carries empty identifiers, its mutators are inert,
// and End performs no completion side effect. It must never be fed into
// correlation logic that assumes a valid traceId.
var noopSpan = &Span{noop: true, status: StatusUnset}

// NoopSpan returns the shared no-op span.
func NoopSpan() *Span {
	return noopSpan
}

// Name returns the span's name.
func (s *Span) Name() string { return s.name }

// TraceID returns the 32-character lowercase hex trace identifier, or the
// empty string on a no-op span.
func (s *Span) TraceID() string { return s.traceID }

// SpanID returns the 16-character lowercase hex span identifier, or the
// empty string on a no-op span.
func (s *Span) SpanID() string { return s.spanID }

// ParentID returns the parent span's identifier, or "" for a root span.
func (s *Span) ParentID() string { return s.parentID }

// StartTime returns when the span was started.
func (s *Span) StartTime() time.Time { return s.startTime }

// EndTime returns when the span was ended, or the zero time if it is
// still recording.
func (s *Span) EndTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime
}

// Duration returns EndTime minus StartTime, or 0 while still recording.
func (s *Span) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ended {
		return 0
	}
	return s.endTime.Sub(s.startTime)
}

// IsRecording reports whether mutations are still accepted.
func (s *Span) IsRecording() bool {
	if s.noop {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended
}

// Status returns the span's status and its message. The message is only
// non-empty for StatusError.
func (s *Span) Status() (Status, string) {
	if s.noop {
		return StatusUnset, ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusMessage
}

// Attributes returns a copy of the span's attribute map.
func (s *Span) Attributes() map[string]any {
	if s.noop {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.attributes))
	for k, v := range s.attributes {
		out[k] = v
	}
	return out
}

// Events returns a copy of the span's ordered event sequence.
func (s *Span) Events() []Event {
	if s.noop {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// SetAttribute sets a single attribute. No-op on a no-op or ended span.
func (s *Span) SetAttribute(key string, value any) *Span {
	if s.noop {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return s
	}
	if s.attributes == nil {
		s.attributes = make(map[string]any)
	}
	s.attributes[key] = value
	return s
}

// SetAttributes sets multiple attributes. No-op on a no-op or ended span.
func (s *Span) SetAttributes(attrs map[string]any) *Span {
	if s.noop || len(attrs) == 0 {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return s
	}
	if s.attributes == nil {
		s.attributes = make(map[string]any, len(attrs))
	}
	for k, v := range attrs {
		s.attributes[k] = v
	}
	return s
}

// AddEvent appends a named event stamped with the current time.
// No-op on a no-op or ended span.
func (s *Span) AddEvent(name string, attrs map[string]any) *Span {
	if s.noop {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return s
	}
	s.events = append(s.events, Event{
		Name:       name,
		Time:       time.Now(),
		Attributes: attrs,
	})
	return s
}

// SetStatus sets the span status. For StatusError the message is recorded
// both on the span and under the reserved "status.message" attribute; for
// any other status the message is discarded. SetStatus does not stamp the
// end time. No-op on a no-op or ended span.
func (s *Span) SetStatus(status Status, message string) *Span {
	if s.noop {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return s
	}
	s.status = status
	if status == StatusError {
		s.statusMessage = message
		if s.attributes == nil {
			s.attributes = make(map[string]any)
		}
		s.attributes[statusMessageKey] = message
	} else {
		s.statusMessage = ""
	}
	return s
}

// End stamps the end time, freezes the span, and fires the completion
// callback exactly once. Calling End again is a no-op; on the shared
// no-op span it does nothing at all.
func (s *Span) End() {
	if s.noop {
		return
	}

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.endTime = time.Now()
	onEnd := s.onEnd
	s.onEnd = nil
	s.mu.Unlock()

	// The callback runs outside the lock: it receives the finalized span
	// and is free to call its accessors.
	if onEnd != nil {
		onEnd(s)
	}
}
