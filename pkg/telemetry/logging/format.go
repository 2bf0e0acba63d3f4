package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ANSI color codes used by the pretty format.
const (
	colorReset   = "\x1b[0m"
	colorGray    = "\x1b[90m"
	colorCyan    = "\x1b[36m"
	colorYellow  = "\x1b[33m"
	colorRed     = "\x1b[31m"
	colorMagenta = "\x1b[35m"
)

// levelColor returns the ANSI color for a level in pretty output.
func levelColor(l Level) string {
	switch l {
	case LevelDebug:
		return colorGray
	case LevelInfo:
		return colorCyan
	case LevelWarn:
		return colorYellow
	case LevelError:
		return colorRed
	case LevelFatal:
		return colorMagenta
	default:
		return colorReset
	}
}

// formatJSON serializes an entry as a single JSON object terminated by a
// newline. Key order is fixed: timestamp, level, service, message, the
// context fields in their entry order, traceId, spanId, error. A context
// field whose key matches a header key is emitted under a "fields." prefix
// so the object never contains duplicate keys. The object
// is built by hand because encoding/json does not preserve field order for
// maps and a marshal failure of one value must not lose the whole entry.
func formatJSON(entry *Entry) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writePair(&buf, "timestamp", entry.Timestamp.Format(time.RFC3339Nano), false)
	writePair(&buf, "level", entry.Level.String(), true)
	writePair(&buf, "service", entry.Service, true)
	writePair(&buf, "message", entry.Message, true)

	for _, f := range entry.Fields {
		key := f.Key
		if reservedKey(key) {
			// A context field must not produce a duplicate of a header key
			// in the same object.
			key = "fields." + key
		}
		writePair(&buf, key, f.Value, true)
	}

	if entry.TraceID != "" {
		writePair(&buf, "traceId", entry.TraceID, true)
	}
	if entry.SpanID != "" {
		writePair(&buf, "spanId", entry.SpanID, true)
	}

	if entry.Err != nil {
		buf.WriteString(`,"error":`)
		writeValue(&buf, entry.Err)
	}

	buf.WriteByte('}')
	buf.WriteByte('\n')
	return buf.Bytes()
}

// formatPretty renders the colorized single-line human format:
//
//	[LEVEL] message {"k":"v"} (trace=4bf92f35)
func formatPretty(entry *Entry) []byte {
	var buf bytes.Buffer

	buf.WriteString(levelColor(entry.Level))
	buf.WriteByte('[')
	buf.WriteString(entry.Level.String())
	buf.WriteByte(']')
	buf.WriteString(colorReset)
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		buf.WriteByte(' ')
		buf.WriteByte('{')
		for i, f := range entry.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(&buf, f.Key)
			buf.WriteByte(':')
			writeValue(&buf, f.Value)
		}
		buf.WriteByte('}')
	}

	if entry.Err != nil {
		buf.WriteByte(' ')
		buf.WriteString(colorRed)
		buf.WriteString(entry.Err.Name)
		buf.WriteString(": ")
		buf.WriteString(entry.Err.Message)
		buf.WriteString(colorReset)
	}

	if entry.TraceID != "" {
		buf.WriteString(colorGray)
		buf.WriteString(" (trace=")
		buf.WriteString(shortID(entry.TraceID))
		buf.WriteByte(')')
		buf.WriteString(colorReset)
	}

	buf.WriteByte('\n')
	return buf.Bytes()
}

// reservedKey reports whether a context field key collides with one of the
// fixed header keys of the JSON format.
func reservedKey(k string) bool {
	switch k {
	case "timestamp", "level", "service", "message", "traceId", "spanId", "error":
		return true
	}
	return false
}

// writePair writes a comma-prefixed "key":value pair.
func writePair(buf *bytes.Buffer, key string, value any, comma bool) {
	if comma {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	buf.WriteByte(':')
	writeValue(buf, value)
}

// writeValue marshals a single value, degrading to its fmt representation
// when it cannot be marshaled (channels, funcs, cyclic values).
func writeValue(buf *bytes.Buffer, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprintf("%v", value))
	}
	buf.Write(b)
}

// writeString marshals a string (always succeeds).
func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// shortID returns the first 8 characters of a hex identifier.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// typeName returns the dynamic type of a value as a string.
func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
