package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// NewLogger returns a Logger that serialises lines onto w.
func NewLogger(w io.Writer) Logger {
	return &hostLogger{w: w}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// OpenLog appends log lines to a file. An empty path or "-" logs to stderr.
func OpenLog(path string) (Logger, io.Closer, error) {
	if path == "" || path == "-" {
		return NewLogger(os.Stderr), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("hal: open log: %w", err)
	}
	return NewLogger(f), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Tee returns a Logger writing every line to each of ls. nil entries are
// skipped.
func Tee(ls ...Logger) Logger {
	out := make(teeLogger, 0, len(ls))
	for _, l := range ls {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type teeLogger []Logger

func (t teeLogger) WriteLineString(s string) {
	for _, l := range t {
		l.WriteLineString(s)
	}
}

func (t teeLogger) WriteLineBytes(b []byte) {
	for _, l := range t {
		l.WriteLineBytes(b)
	}
}
