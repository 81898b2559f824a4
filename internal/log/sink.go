package log

import "sync"

// Sink is an append-only diagnostic channel. The conversion pipeline writes
// its progress here instead of holding a global handle, so the host decides
// where lines end up. A Sink must tolerate being called from the queue
// worker goroutine.
type Sink interface {
	Append(line string)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(line string)

// Append calls f(line)
func (f SinkFunc) Append(line string) {
	f(line)
}

// Discard drops every line
var Discard Sink = SinkFunc(func(string) {})

// StderrSink forwards lines to the package logger at a fixed level
type StderrSink struct {
	Level Level
}

// Append logs line at the sink's level
func (s StderrSink) Append(line string) {
	log(s.Level, "%s", line)
}

// Lines collects appended lines in memory
type Lines struct {
	mu    sync.Mutex
	lines []string
}

// Append records line
func (l *Lines) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

// Lines returns a copy of everything appended so far
func (l *Lines) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tee fans each line out to every non-nil sink
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(line string) {
		for _, s := range sinks {
			if s != nil {
				s.Append(line)
			}
		}
	})
}
