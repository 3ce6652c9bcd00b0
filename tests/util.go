package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kampushq/kampus/core"
)

// Logger is a core.Logger that records messages for assertions.
type Logger struct {
	mu      sync.Mutex
	entries []string
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger { return &Logger{} }

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg)
	panic(fmt.Sprintf("fatal: %s", msg))
}

func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// IntPtr returns a pointer to n; handy for optional int fields in fixtures.
func IntPtr(n int) *int { return &n }

// Must fails the test on err.
func Must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
