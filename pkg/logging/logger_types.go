// Package logging is the structured logger shared by the loaders, the
// graph builder and the command-line tools. Log lines go to stderr so
// stdout stays free for summaries.
package logging

import (
	"fmt"
	"strings"
)

// Level is the severity of a log line
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	// WarnLevel reports recoverable data problems: dropped columns,
	// skipped files, rows without endpoints.
	WarnLevel
	// ErrorLevel reports failures that abort a pipeline stage.
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel maps a case-insensitive level name to a Level. Unknown names
// fall back to InfoLevel; "warning" is accepted for WarnLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Format selects how a StreamLogger encodes lines
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Formats lists the accepted format names.
var Formats = []string{string(FormatJSON), string(FormatText)}

// ParseFormat maps a name to a Format, defaulting to JSON.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatText)) {
		return FormatText
	}
	return FormatJSON
}

// Field is one key-value pair attached to a log line
type Field struct {
	Key   string
	Value any
}

// Logger is what every pipeline component logs through. Components take a
// Logger explicitly; there is no package-level default.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child that adds fields to every line.
	With(fields ...Field) Logger
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}

func (n NopLogger) With(...Field) Logger { return n }

// NewNopLogger creates a logger that discards all output
func NewNopLogger() Logger {
	return NopLogger{}
}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
