package logging

import "sync"

// Recorder is an in-memory Logger that keeps every entry it receives.
// Tests use it to assert that warnings were reported.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]RecordedEntry
	fields  []Field
}

// RecordedEntry is one message captured by a Recorder
type RecordedEntry struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]RecordedEntry{}}
}

func (r *Recorder) record(level Level, msg string, fields []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := make(map[string]any, len(r.fields)+len(fields))
	for _, f := range r.fields {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	*r.entries = append(*r.entries, RecordedEntry{Level: level, Message: msg, Fields: m})
}

func (r *Recorder) Debug(msg string, fields ...Field) { r.record(DebugLevel, msg, fields) }
func (r *Recorder) Info(msg string, fields ...Field)  { r.record(InfoLevel, msg, fields) }
func (r *Recorder) Warn(msg string, fields ...Field)  { r.record(WarnLevel, msg, fields) }
func (r *Recorder) Error(msg string, fields ...Field) { r.record(ErrorLevel, msg, fields) }

// With returns a child Recorder sharing the same entry log
func (r *Recorder) With(fields ...Field) Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Recorder{
		mu:      r.mu,
		entries: r.entries,
		fields:  append(append([]Field{}, r.fields...), fields...),
	}
}

// Entries returns a copy of everything recorded so far
func (r *Recorder) Entries() []RecordedEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEntry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// Messages returns the messages recorded at the given level
func (r *Recorder) Messages(level Level) []string {
	var msgs []string
	for _, e := range r.Entries() {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}
