package logging

import (
	"runtime"
	"sort"
	"time"
)

// Field is a single key/value pair attached to an Entry.
// Fields preserve their order so that formatted output is deterministic.
type Field struct {
	Key   string
	Value any
}

// ErrorInfo captures the name, message, and stack trace of an error
// embedded in an Entry.
type ErrorInfo struct {
	// Name is the concrete error type (e.g., "*errors.errorString").
	Name string `json:"name"`

	// Message is the error's Error() text.
	Message string `json:"message"`

	// Stack is the goroutine stack at the log call site.
	Stack string `json:"stack,omitempty"`
}

// Entry is an immutable snapshot of a single log call. It is constructed
// per emitted call, handed to formatting and dispatch, and then discarded.
// Entries for calls below the configured minimum level are never created.
type Entry struct {
	// Level is the severity of the entry.
	Level Level

	// Message is the log message text.
	Message string

	// Timestamp is when the log call was made.
	Timestamp time.Time

	// Service is the name of the emitting service.
	Service string

	// Fields contains structured context, ordered with unique keys.
	Fields []Field

	// Err holds error details for Error and Fatal entries, if supplied.
	Err *ErrorInfo

	// TraceID and SpanID correlate the entry with an active trace, if the
	// logger has trace context bound. Hex strings, empty when unbound.
	TraceID string
	SpanID  string
}

// fieldsFromMap converts a context map into an ordered field slice.
// Keys are sorted so that the same map always produces the same output,
// regardless of Go's map iteration order.
func fieldsFromMap(ctx map[string]any) []Field {
	if len(ctx) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: ctx[k]})
	}
	return fields
}

// mergeFields appends extra fields onto base, dropping extras whose key
// already exists in base. Entry keys stay unique; the first binding wins.
func mergeFields(base, extra []Field) []Field {
	if len(base) == 0 {
		return extra
	}
	if len(extra) == 0 {
		return base
	}

	seen := make(map[string]struct{}, len(base))
	merged := make([]Field, 0, len(base)+len(extra))
	for _, f := range base {
		seen[f.Key] = struct{}{}
		merged = append(merged, f)
	}
	for _, f := range extra {
		if _, dup := seen[f.Key]; dup {
			continue
		}
		merged = append(merged, f)
	}
	return merged
}

// errorInfo builds an ErrorInfo from an error, capturing the current stack.
func errorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)

	return &ErrorInfo{
		Name:    errName(err),
		Message: err.Error(),
		Stack:   string(buf[:n]),
	}
}

// errName returns the name of an error: a custom Name() if the error
// provides one, otherwise its concrete Go type.
func errName(err error) string {
	type named interface{ Name() string }
	if n, ok := err.(named); ok {
		return n.Name()
	}
	return typeName(err)
}
