package logging

import "fmt"

// Level represents a log severity level.
// Levels are totally ordered: Debug < Info < Warn < Error < Fatal.
type Level int

const (
	// LevelDebug is for verbose diagnostic output.
	LevelDebug Level = iota

	// LevelInfo is for routine operational messages.
	LevelInfo

	// LevelWarn is for conditions that deserve attention but are not errors.
	LevelWarn

	// LevelError is for failures of an individual operation.
	LevelError

	// LevelFatal is for unrecoverable failures. The logger itself never
	// terminates the process; callers decide what to do after a fatal entry.
	LevelFatal
)

// String returns the upper-case name of the level as it appears in output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel parses a log level string into a Level.
// An empty string defaults to LevelInfo.
func ParseLevel(levelStr string) (Level, error) {
	switch levelStr {
	case "debug", "DEBUG":
		return LevelDebug, nil
	case "info", "INFO", "":
		return LevelInfo, nil
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn, nil
	case "error", "ERROR":
		return LevelError, nil
	case "fatal", "FATAL":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
}
