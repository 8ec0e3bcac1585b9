package lib

import (
	"log"
	"testing"
)

// Logger receives protocol-level debugging from the IMAP and messaging
// adapters. The commands plug in a *log.Logger when running verbose,
// otherwise the adapters fall back to NoLog.
type Logger interface {
	Print(a ...any)
	Println(a ...any)
	Printf(format string, a ...any)
}

var (
	_ Logger = (*log.Logger)(nil)
	_ Logger = (*NoLog)(nil)
	_ Logger = (*TestLogger)(nil)
)

// NoLog drops everything sent to it.
type NoLog struct{}

func (l *NoLog) Print(a ...any)                 {}
func (l *NoLog) Println(a ...any)               {}
func (l *NoLog) Printf(format string, a ...any) {}

// TestLogger forwards adapter debugging to the test log, prefixed with the
// name of the adapter under test so interleaved output stays readable.
type TestLogger struct {
	t      *testing.T
	prefix string
}

func NewTestLogger(t *testing.T, prefix string) *TestLogger {
	return &TestLogger{
		t:      t,
		prefix: prefix,
	}
}

func (l *TestLogger) Print(a ...any) {
	if l.prefix == "" {
		l.t.Log(a...)
		return
	}
	l.t.Log(append([]any{l.prefix + ":"}, a...)...)
}

func (l *TestLogger) Println(a ...any) {
	l.Print(a...)
}

func (l *TestLogger) Printf(format string, a ...any) {
	if l.prefix != "" {
		format = l.prefix + ": " + format
	}
	l.t.Logf(format, a...)
}
