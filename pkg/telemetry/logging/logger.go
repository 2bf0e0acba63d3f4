package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Destination selects where formatted entries are routed.
type Destination string

const (
	// DestinationConsole writes entries to the standard streams, using the
	// pretty human-readable format when Pretty is set and JSON otherwise.
	DestinationConsole Destination = "console"

	// DestinationJSON writes one JSON object per entry to the standard streams.
	DestinationJSON Destination = "json"

	// DestinationCustom performs no I/O and hands the raw entry to the
	// configured Handler.
	DestinationCustom Destination = "custom"
)

// Handler receives raw entries when the destination is DestinationCustom.
type Handler func(*Entry)

// Config contains configuration for the Logger.
type Config struct {
	// Service is the service name tagged onto every entry. Required.
	Service string

	// Level is the minimum level emitted ("debug", "info", "warn", "error",
	// "fatal"). Default: "debug" when Development is set, "info" otherwise.
	Level string

	// Pretty selects the colorized single-line human format for the console
	// destination instead of JSON.
	// Default: false
	Pretty bool

	// Destination routes entries: "console", "json", or "custom".
	// Default: "console"
	Destination Destination

	// Handler is the sink invoked with each raw entry when Destination is
	// "custom". Required in that case, ignored otherwise.
	Handler Handler

	// Development lowers the default minimum level to debug.
	// Default: false
	Development bool

	// Redact enables scrubbing of secret-looking field values (API keys,
	// bearer tokens) before formatting.
	// Default: false
	Redact bool

	// Writer receives debug, info, and warn entries.
	// Default: os.Stdout
	Writer io.Writer

	// ErrWriter receives error and fatal entries.
	// Default: os.Stderr
	ErrWriter io.Writer
}

// Logger emits level-filtered structured log entries. A single Logger is
// safe for concurrent use; the trace-context binding is guarded by a mutex,
// but the ambient binding is shared by all goroutines using the same
// instance (see WithTraceContext for the scoped alternative).
type Logger struct {
	service     string
	level       atomic.Int32
	pretty      bool
	destination Destination
	handler     Handler
	redactor    *Redactor
	writer      io.Writer
	errWriter   io.Writer

	// bound contains pre-merged fields inherited by every entry (Child).
	bound []Field

	mu      sync.RWMutex
	traceID string
	spanID  string
}

// New creates a new Logger with the given configuration.
func New(cfg Config) (*Logger, error) {
	if cfg.Service == "" {
		return nil, errors.New("logging: service name is required")
	}

	levelStr := cfg.Level
	if levelStr == "" {
		if cfg.Development {
			levelStr = "debug"
		} else {
			levelStr = "info"
		}
	}
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	destination := cfg.Destination
	if destination == "" {
		destination = DestinationConsole
	}
	switch destination {
	case DestinationConsole, DestinationJSON:
	case DestinationCustom:
		if cfg.Handler == nil {
			return nil, errors.New("logging: custom destination requires a handler")
		}
	default:
		return nil, fmt.Errorf("unknown log destination: %s", destination)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}
	errWriter := cfg.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}

	var redactor *Redactor
	if cfg.Redact {
		redactor = NewRedactor()
	}

	l := &Logger{
		service:     cfg.Service,
		pretty:      cfg.Pretty,
		destination: destination,
		handler:     cfg.Handler,
		redactor:    redactor,
		writer:      writer,
		errWriter:   errWriter,
	}
	l.level.Store(int32(level))
	return l, nil
}

// Debug logs a message at debug level with optional structured context.
func (l *Logger) Debug(msg string, ctx map[string]any) {
	l.log(LevelDebug, msg, ctx, nil)
}

// Info logs a message at info level with optional structured context.
func (l *Logger) Info(msg string, ctx map[string]any) {
	l.log(LevelInfo, msg, ctx, nil)
}

// Warn logs a message at warn level with optional structured context.
func (l *Logger) Warn(msg string, ctx map[string]any) {
	l.log(LevelWarn, msg, ctx, nil)
}

// Error logs a message at error level. The error's name, message, and stack
// are embedded in the entry when err is non-nil.
func (l *Logger) Error(msg string, ctx map[string]any, err error) {
	l.log(LevelError, msg, ctx, err)
}

// Fatal logs a message at fatal level. The logger does not terminate the
// process; the caller owns process lifecycle.
func (l *Logger) Fatal(msg string, ctx map[string]any, err error) {
	l.log(LevelFatal, msg, ctx, err)
}

// log constructs and dispatches an entry. Calls below the minimum level
// return before any allocation. Dispatch never panics out of the call site;
// formatting failures degrade to best-effort stringification and handler
// panics are swallowed.
func (l *Logger) log(level Level, msg string, ctx map[string]any, err error) {
	// Fast path: filtered levels cost an atomic load and nothing else.
	if level < Level(l.level.Load()) {
		return
	}

	traceID, spanID := l.TraceContext()

	entry := &Entry{
		Level:     level,
		Message:   msg,
		Timestamp: time.Now(),
		Service:   l.service,
		Fields:    mergeFields(l.bound, fieldsFromMap(ctx)),
		Err:       errorInfo(err),
		TraceID:   traceID,
		SpanID:    spanID,
	}

	if l.redactor != nil {
		l.redactor.RedactEntry(entry)
	}

	l.dispatch(entry)
}

// dispatch routes a finished entry to its destination.
func (l *Logger) dispatch(entry *Entry) {
	defer func() {
		// A logging call must never propagate a failure to the call site.
		_ = recover()
	}()

	if l.destination == DestinationCustom {
		l.handler(entry)
		return
	}

	out := l.writer
	if entry.Level >= LevelError {
		out = l.errWriter
	}

	var line []byte
	if l.destination == DestinationConsole && l.pretty {
		line = formatPretty(entry)
	} else {
		line = formatJSON(entry)
	}
	_, _ = out.Write(line)
}

// SetTraceContext binds a traceId/spanId pair consulted by every subsequent
// log call on this instance until cleared. The binding is ambient: all
// goroutines sharing the instance observe it. Prefer WithTraceContext when
// concurrent units of work log through the same logger.
func (l *Logger) SetTraceContext(traceID, spanID string) {
	l.mu.Lock()
	l.traceID = traceID
	l.spanID = spanID
	l.mu.Unlock()
}

// ClearTraceContext removes any bound trace context.
func (l *Logger) ClearTraceContext() {
	l.SetTraceContext("", "")
}

// TraceContext returns the currently bound traceId and spanId.
func (l *Logger) TraceContext() (traceID, spanID string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.traceID, l.spanID
}

// WithTraceContext runs fn with a derived logger bound to the given trace
// context. The binding lives only on the derived instance, so concurrent
// units of work cannot leak context into each other through a shared logger.
func (l *Logger) WithTraceContext(traceID, spanID string, fn func(*Logger)) {
	child := l.clone()
	child.traceID = traceID
	child.spanID = spanID
	fn(child)
}

// Child returns a new logger that inherits this logger's configuration and
// current trace context, with the given context pre-merged into every
// subsequent entry. Keys already bound on the parent keep their values.
func (l *Logger) Child(ctx map[string]any) *Logger {
	child := l.clone()
	child.bound = mergeFields(l.bound, fieldsFromMap(ctx))
	return child
}

// clone copies the logger's configuration and current trace context into a
// fresh instance with its own mutex.
func (l *Logger) clone() *Logger {
	traceID, spanID := l.TraceContext()
	child := &Logger{
		service:     l.service,
		pretty:      l.pretty,
		destination: l.destination,
		handler:     l.handler,
		redactor:    l.redactor,
		writer:      l.writer,
		errWriter:   l.errWriter,
		bound:       l.bound,
		traceID:     traceID,
		spanID:      spanID,
	}
	child.level.Store(l.level.Load())
	return child
}

// Level returns the minimum level this logger emits.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the minimum emitted level at runtime. Safe to call
// concurrently with logging. Derived loggers created before the call keep
// the level they were created with.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}
