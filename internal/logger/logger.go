package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const (
	// LoggerKey is the context key for the logger instance
	LoggerKey ContextKey = "logger"
)

// New creates a new structured logger with default configuration
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Caller().Logger()
}

// NewWithWriter creates a new structured logger with a custom writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

// NewWithRunFile creates a logger that writes to the console and to a
// timestamped log file under logsDir. It returns the logger, the log file
// path, and a close function for the file.
func NewWithRunFile(logsDir string) (zerolog.Logger, string, func() error, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return zerolog.Logger{}, "", nil, fmt.Errorf("creating logs dir: %w", err)
	}

	logPath := filepath.Join(logsDir, fmt.Sprintf("finance_logs_%s.log", time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, "", nil, fmt.Errorf("opening log file: %w", err)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	multi := zerolog.MultiLevelWriter(console, file)

	log := zerolog.New(multi).With().Timestamp().Caller().Logger()
	return log, logPath, file.Close, nil
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a default logger
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}
