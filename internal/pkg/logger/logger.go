// Package logger wraps zerolog the way the donor codebase does, trimmed of
// its Fiber-request-context helpers since this module has no HTTP surface.
package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger wraps zerolog logger
type Logger struct {
	logger *zerolog.Logger
}

// New creates a new logger instance
func New(level, format string) *Logger {
	// Parse log level
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Configure output format
	var zl zerolog.Logger
	if format == "pretty" || format == "console" {
		zl = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Caller().Logger()
	} else {
		zl = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
	}

	return &Logger{
		logger: &zl,
	}
}

// Info returns a zerolog event for info logging (supports chaining)
func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Debug returns a zerolog event for debug logging (supports chaining)
func (l *Logger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

// Warn returns a zerolog event for warn logging (supports chaining)
func (l *Logger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

// Error returns a zerolog event for error logging (supports chaining)
func (l *Logger) Error() *zerolog.Event {
	return l.logger.Error()
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal() *zerolog.Event {
	return l.logger.Fatal()
}

// WithField returns a new logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	newLogger := l.logger.With().Interface(key, value).Logger()
	return &Logger{logger: &newLogger}
}

// WithFields returns a new logger with multiple additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newLogger := l.logger.With().Fields(fields).Logger()
	return &Logger{logger: &newLogger}
}

// GetZerolog returns the underlying zerolog logger
func (l *Logger) GetZerolog() *zerolog.Logger {
	return l.logger
}

// ctxKey namespaces context values this package reads, avoiding collisions
// with a collaborator's own context keys.
type ctxKey string

const (
	traceIDKey   ctxKey = "trace_id"
	sessionIDKey ctxKey = "session_id"
)

// WithTraceID returns a context carrying a trace ID for WithTraceContext to surface.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// WithSessionID returns a context carrying a session ID for WithTraceContext to surface.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithTraceContext returns a logger with traceID and sessionID pulled from ctx.
// Replaces the donor's fiber.Ctx-bound WithTrace: this module has no HTTP
// framework dependency, so the only carrier available is context.Context.
func (l *Logger) WithTraceContext(ctx context.Context) *Logger {
	traceID, _ := ctx.Value(traceIDKey).(string)
	sessionID, _ := ctx.Value(sessionIDKey).(string)

	if traceID == "" && sessionID == "" {
		return l
	}

	newLogger := l.logger.With().
		Str("trace_id", traceID).
		Str("session_id", sessionID).
		Logger()

	return &Logger{logger: &newLogger}
}
