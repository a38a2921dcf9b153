package graphscene

import (
	"fmt"
	"os"
)

// Logger is the minimal diagnostics sink used throughout the core. Hosts may
// supply their own implementation to redirect output to an application log
// channel; the default simply writes tagged lines to stderr via plain
// fmt.Fprintf rather than pulling in a logging library.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// stderrLogger is the default Logger.
type stderrLogger struct{ prefix string }

// NewStderrLogger returns a Logger that writes tagged lines to stderr.
func NewStderrLogger(prefix string) Logger {
	if prefix == "" {
 prefix = "graphscene"
	}
	return &stderrLogger{prefix: prefix}
}

func (l *stderrLogger) Debugf(format string, args ...any) { l.write("debug", format, args) }
func (l *stderrLogger) Warnf(format string, args ...any) { l.write("warn", format, args) }
func (l *stderrLogger) Errorf(format string, args ...any) { l.write("error", format, args) }

func (l *stderrLogger) write(level, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", l.prefix, level, msg)
}

// noopLogger discards everything; useful in tests.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any) {}
func (noopLogger) Errorf(string, ...any) {}

// NoopLogger returns a Logger that discards all output.
func NoopLogger() Logger { return noopLogger{} }
