// Package logger provides the logging abstraction used when statements are
// executed. Any log/slog logger can be plugged in through SlogAdapter.
package logger

import (
	"io"
	"log/slog"
)

// Logger receives structured statement logs as key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoopLogger discards everything. It is the default.
type NoopLogger struct{}

// Debug does nothing.
func (NoopLogger) Debug(string, ...any) {}

// Info does nothing.
func (NoopLogger) Info(string, ...any) {}

// Warn does nothing.
func (NoopLogger) Warn(string, ...any) {}

// Error does nothing.
func (NoopLogger) Error(string, ...any) {}

// SlogAdapter forwards to a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps l. A nil l falls back to slog.Default().
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{logger: l}
}

// NewTextLogger builds a SlogAdapter writing slog text records to w at level.
func NewTextLogger(w io.Writer, level slog.Level) *SlogAdapter {
	return NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Debug logs at debug level.
func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }

// Info logs at info level.
func (a *SlogAdapter) Info(msg string, args ...any) { a.logger.Info(msg, args...) }

// Warn logs at warn level.
func (a *SlogAdapter) Warn(msg string, args ...any) { a.logger.Warn(msg, args...) }

// Error logs at error level.
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }
