package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// StreamLogger writes one line per entry to an io.Writer, as JSON or as
// key=value text. Children created by With share the writer and its lock,
// so lines from concurrent file loaders never interleave.
type StreamLogger struct {
	out    io.Writer
	level  Level
	format Format
	fields []Field
	mu     *sync.Mutex

	now func() time.Time
}

// entry is the JSON shape of one line
type entry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// New creates a StreamLogger that drops lines below level.
func New(out io.Writer, level Level, format Format) *StreamLogger {
	return &StreamLogger{
		out:    out,
		level:  level,
		format: format,
		mu:     &sync.Mutex{},
		now:    time.Now,
	}
}

// Enabled reports whether lines at level are written.
func (l *StreamLogger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *StreamLogger) Debug(msg string, fields ...Field) { l.write(DebugLevel, msg, fields) }
func (l *StreamLogger) Info(msg string, fields ...Field)  { l.write(InfoLevel, msg, fields) }
func (l *StreamLogger) Warn(msg string, fields ...Field)  { l.write(WarnLevel, msg, fields) }
func (l *StreamLogger) Error(msg string, fields ...Field) { l.write(ErrorLevel, msg, fields) }

// With returns a child logger carrying fields on every line.
func (l *StreamLogger) With(fields ...Field) Logger {
	child := *l
	child.fields = append(append(make([]Field, 0, len(l.fields)+len(fields)), l.fields...), fields...)
	return &child
}

func (l *StreamLogger) write(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}
	all := l.fields
	if len(fields) > 0 {
		all = append(append(make([]Field, 0, len(l.fields)+len(fields)), l.fields...), fields...)
	}

	ts := l.now().UTC().Format(time.RFC3339Nano)
	var line []byte
	if l.format == FormatText {
		line = encodeText(ts, level, msg, all)
	} else {
		line = encodeJSON(ts, level, msg, all)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}

func encodeJSON(ts string, level Level, msg string, fields []Field) []byte {
	e := entry{Time: ts, Level: level.String(), Message: msg}
	if len(fields) > 0 {
		e.Fields = make(map[string]any, len(fields))
		for _, f := range fields {
			e.Fields[f.Key] = f.Value
		}
	}
	data, err := json.Marshal(e)
	if err != nil {
		data, _ = json.Marshal(entry{
			Time: ts, Level: ErrorLevel.String(),
			Message: "unencodable log entry: " + msg,
			Fields:  map[string]any{"error": err.Error()},
		})
	}
	return append(data, '\n')
}

// encodeText renders `time LEVEL msg key=value ...` with fields in the
// order given. A key repeated by a child logger is written twice.
func encodeText(ts string, level Level, msg string, fields []Field) []byte {
	var b strings.Builder
	b.WriteString(ts)
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(textValue(f.Value))
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

func textValue(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		s = val
	case []string:
		s = strings.Join(val, ",")
	default:
		s = fmt.Sprint(val)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// TimedOperation logs an operation once it ends, with its latency
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: OrNop(logger),
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs the operation at INFO and returns its duration.
func (t *TimedOperation) End(extra ...Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Info(t.msg, t.with(extra, Latency(elapsed))...)
	return elapsed
}

// EndError logs the operation at ERROR with err and returns its duration.
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, t.with(nil, Latency(elapsed), Error(err))...)
	return elapsed
}

func (t *TimedOperation) with(extra []Field, tail ...Field) []Field {
	out := make([]Field, 0, len(t.fields)+len(extra)+len(tail))
	out = append(out, t.fields...)
	out = append(out, extra...)
	return append(out, tail...)
}
