package logging

import "time"

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Strings(key string, values []string) Field { return Field{Key: key, Value: values} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Error stores err's message under "error"; nil stays nil.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Latency is a duration rendered like "1.5ms".
func Latency(d time.Duration) Field { return String("latency", d.String()) }

func Component(name string) Field { return String("component", name) }

func Operation(op string) Field { return String("operation", op) }

func Count(n int) Field { return Int("count", n) }

func Path(p string) Field { return String("path", p) }

func User(id string) Field { return String("user_id", id) }

func Column(name string) Field { return String("column", name) }

func Rows(n int) Field { return Int("rows", n) }

// RunID tags every line of one command invocation.
func RunID(id string) Field { return String("run_id", id) }
