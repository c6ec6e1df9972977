package simulation

import (
	"fmt"
	"io"
)

// Logger is a minimal logging interface for the simulation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// WriterLogger writes leveled lines to W. Debug lines are dropped unless
// Debug is set.
type WriterLogger struct {
	W     io.Writer
	Debug bool
}

func (l WriterLogger) Debugf(format string, args ...any) {
	if l.Debug {
		fmt.Fprintf(l.W, "DEBUG "+format+"\n", args...)
	}
}

func (l WriterLogger) Infof(format string, args ...any) {
	fmt.Fprintf(l.W, "INFO  "+format+"\n", args...)
}

func (l WriterLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.W, "WARN  "+format+"\n", args...)
}

func (l WriterLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.W, "ERROR "+format+"\n", args...)
}
