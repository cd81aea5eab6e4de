package networkingx

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
)

// Logger receives best-effort diagnostic events from the pipeline: the
// request before sending, the response or error after. Implementations must
// be safe for concurrent use and must never block or panic; logging failures
// do not affect the request outcome.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// SimpleLogger writes leveled key-value lines to stderr.
type SimpleLogger struct{}

// NewSimpleLogger creates a console logger.
func NewSimpleLogger() *SimpleLogger {
	return &SimpleLogger{}
}

func (l *SimpleLogger) Debug(msg string, keysAndValues ...any) { l.print("DEBUG", msg, keysAndValues) }
func (l *SimpleLogger) Info(msg string, keysAndValues ...any)  { l.print("INFO", msg, keysAndValues) }
func (l *SimpleLogger) Warn(msg string, keysAndValues ...any)  { l.print("WARN", msg, keysAndValues) }
func (l *SimpleLogger) Error(msg string, keysAndValues ...any) { l.print("ERROR", msg, keysAndValues) }

func (l *SimpleLogger) print(level, msg string, keysAndValues []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	fmt.Fprintln(os.Stderr, b.String())
}

// DiscardLogger drops every event. It is the default logger.
type DiscardLogger struct{}

func (DiscardLogger) Debug(msg string, keysAndValues ...any) {}
func (DiscardLogger) Info(msg string, keysAndValues ...any)  {}
func (DiscardLogger) Warn(msg string, keysAndValues ...any)  {}
func (DiscardLogger) Error(msg string, keysAndValues ...any) {}

// ApexLogger adapts an apex/log logger to the Logger interface, turning
// key-value pairs into structured fields.
type ApexLogger struct {
	logger log.Interface
}

// NewApexLogger wraps the given apex/log logger. Passing nil wraps the
// apex/log package-level logger.
func NewApexLogger(logger log.Interface) *ApexLogger {
	if logger == nil {
		logger = log.Log
	}
	return &ApexLogger{logger: logger}
}

func (l *ApexLogger) Debug(msg string, keysAndValues ...any) {
	l.entry(keysAndValues).Debug(msg)
}

func (l *ApexLogger) Info(msg string, keysAndValues ...any) {
	l.entry(keysAndValues).Info(msg)
}

func (l *ApexLogger) Warn(msg string, keysAndValues ...any) {
	l.entry(keysAndValues).Warn(msg)
}

func (l *ApexLogger) Error(msg string, keysAndValues ...any) {
	l.entry(keysAndValues).Error(msg)
}

func (l *ApexLogger) entry(keysAndValues []any) log.Interface {
	fields := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprintf("%v", keysAndValues[i])] = keysAndValues[i+1]
	}
	if len(fields) == 0 {
		return l.logger
	}
	return l.logger.WithFields(fields)
}
