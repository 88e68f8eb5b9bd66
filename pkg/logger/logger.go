// Package logger provides structured logging for kutir-report.
//
// It wraps log/slog with a small interface so engine packages can take
// a logger without caring about handlers, and supports text and JSON
// output at configurable levels.
//
// Example usage:
//
//	log := logger.New(logger.Config{Level: "info", Output: "stderr", Format: "text"})
//	log.Info("snapshot loaded", "records", n)
//	log.Warn("dropping row", "reason", "bad date")
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides leveled structured logging with key-value fields.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// With returns a new logger carrying additional context fields.
	With(keysAndValues ...interface{}) Logger
}

// Config contains logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Output is the destination (stdout, stderr, or a file path).
	Output string

	// Format is the output format (text, json).
	Format string
}

// slogLogger implements the Logger interface on top of slog.
type slogLogger struct {
	s *slog.Logger
}

// New creates a logger from the given configuration.
//
// An invalid configuration falls back to info level, stderr, text
// format rather than failing: logging must never take the process down.
func New(cfg Config) Logger {
	writer, err := openOutput(cfg.Output)
	if err != nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return &slogLogger{s: slog.New(handler)}
}

// Default returns a logger with info level, stderr output, text format.
func Default() Logger {
	return New(Config{Level: "info", Output: "stderr", Format: "text"})
}

// Noop returns a logger that discards everything. Useful in tests.
func Noop() Logger {
	return &slogLogger{s: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Debug implements Logger.Debug.
func (l *slogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debug(msg, keysAndValues...)
}

// Info implements Logger.Info.
func (l *slogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Info(msg, keysAndValues...)
}

// Warn implements Logger.Warn.
func (l *slogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warn(msg, keysAndValues...)
}

// Error implements Logger.Error.
func (l *slogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Error(msg, keysAndValues...)
}

// With implements Logger.With.
func (l *slogLogger) With(keysAndValues ...interface{}) Logger {
	return &slogLogger{s: l.s.With(keysAndValues...)}
}

// parseLevel maps a level string to slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openOutput resolves a destination name to a writer.
//
// "stdout" and "stderr" map to the process streams; anything else is
// treated as a file path opened for appending.
func openOutput(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, nil
	case "stderr", "":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", output, err)
		}
		return f, nil
	}
}
