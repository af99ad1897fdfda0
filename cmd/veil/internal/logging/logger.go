// Package logging provides structured logging with zerolog.
// It supports simple text, console, and JSON formats, log levels, file
// output, run ID tracking, and PII redaction of key=value log messages
// before they reach any sink.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/thalib/veil/cmd/veil/internal/constants"
)

// dualWriter writes each event to two outputs with different formatting:
// - consoleWriter: zerolog.ConsoleWriter for colorized output
// - fileWriter: formatWriter for plain-text file logging
type dualWriter struct {
	consoleWriter io.Writer
	fileWriter    io.Writer
}

func (dw *dualWriter) Write(p []byte) (n int, err error) {
	// Console writer first, as it's the primary output for console mode.
	n1, err1 := dw.consoleWriter.Write(p)

	// File writer (always attempt, even if console fails)
	n2, err2 := dw.fileWriter.Write(p)

	if n1 > n2 {
		n = n1
	} else {
		n = n2
	}

	if err1 != nil {
		return n, err1
	}
	return n, err2
}

// Level represents logging levels
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level Level

	// Format is the output format (simple, json, or console)
	Format string

	// Output is the writer for logs (default: os.Stdout)
	Output io.Writer

	// FilePath is the path to the log file (if specified, Output is ignored)
	FilePath string

	// DualOutput enables dual logging: stdout (console format) + file (simple format)
	DualOutput bool

	// ServiceName is the name of the service
	ServiceName string

	// Version is the version of the service
	Version string

	// SlowQueryThreshold is the duration after which a query is considered slow
	SlowQueryThreshold time.Duration

	// RedactFields are the key=value field names whose values are redacted
	// from log messages. Defaults to constants.PIIFields.
	RedactFields []string

	// Separator terminates key=value segments in messages (default ';').
	Separator byte

	// Assign joins keys to values inside segments (default '=').
	Assign byte

	// Placeholder replaces redacted values (default "***").
	Placeholder string
}

// Logger wraps zerolog for structured logging with PII redaction.
type Logger struct {
	logger          zerolog.Logger
	config          LoggerConfig
	redactor        *RedactingFormatter
	sensitiveFields map[string]bool
}

// NewLogger creates a new structured logger. Every configured output mode
// passes through the redaction stage, so no sink can observe a sensitive
// value.
func NewLogger(config LoggerConfig) *Logger {
	var output io.Writer

	if config.FilePath != "" {
		dir := filepath.Dir(config.FilePath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create log directory %s: %v\n", dir, err)
			output = os.Stdout
		} else {
			file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", config.FilePath, err)
				output = os.Stdout
			} else {
				output = file
			}
		}
	} else if config.Output != nil {
		output = config.Output
	} else {
		output = os.Stdout
	}

	if config.Level == "" {
		config.Level = LevelInfo
	}
	if config.SlowQueryThreshold == 0 {
		config.SlowQueryThreshold = constants.SlowQueryThreshold
	}
	if config.RedactFields == nil {
		config.RedactFields = constants.PIIFields
	}
	if config.Separator == 0 {
		config.Separator = constants.FieldSeparator
	}
	if config.Assign == 0 {
		config.Assign = constants.FieldAssign
	}
	if config.Placeholder == "" {
		config.Placeholder = constants.RedactionPlaceholder
	}

	redactor := NewRedactingFormatter(TextFormatter{},
		config.RedactFields, config.Separator, config.Assign, config.Placeholder)

	var zeroLevel zerolog.Level
	switch config.Level {
	case LevelDebug:
		zeroLevel = zerolog.DebugLevel
	case LevelInfo:
		zeroLevel = zerolog.InfoLevel
	case LevelWarn:
		zeroLevel = zerolog.WarnLevel
	case LevelError:
		zeroLevel = zerolog.ErrorLevel
	default:
		zeroLevel = zerolog.InfoLevel
	}

	// Configure the output pipeline. Redaction happens before any
	// format-specific rendering.
	var sink io.Writer
	if config.DualOutput && config.FilePath != "" {
		// Dual output: stdout gets console format, the file gets simple
		// format. The redactWriter rewrites the message once, upstream of
		// the fanout, so both sinks see redacted text.
		consoleOut := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		fileOut := &formatWriter{out: output, formatter: TextFormatter{}}
		sink = &redactWriter{
			out:      &dualWriter{consoleWriter: consoleOut, fileWriter: fileOut},
			redactor: redactor,
		}
	} else if config.Format == "json" {
		sink = &redactWriter{out: output, redactor: redactor}
	} else if config.Format == "console" {
		consoleOut := zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
		sink = &redactWriter{out: consoleOut, redactor: redactor}
	} else {
		// Default simple text format: [LEVEL](TIMESTAMP): MESSAGE, rendered
		// through the redacting formatter decoration.
		sink = &formatWriter{out: output, formatter: redactor}
	}

	logger := zerolog.New(sink).Level(zeroLevel).With().Timestamp().Logger()

	if config.ServiceName != "" {
		logger = logger.With().Str("service", config.ServiceName).Logger()
	}
	if config.Version != "" {
		logger = logger.With().Str("version", config.Version).Logger()
	}

	// Structured-key masking set (case-insensitive), for WithField values.
	sensitiveFields := make(map[string]bool)
	for _, field := range config.RedactFields {
		sensitiveFields[strings.ToLower(field)] = true
	}

	return &Logger{
		logger:          logger,
		config:          config,
		redactor:        redactor,
		sensitiveFields: sensitiveFields,
	}
}

// Redactor returns the formatter decoration this logger applies to messages.
func (l *Logger) Redactor() *RedactingFormatter {
	return l.redactor
}

// WithContext returns a logger with context fields
func (l *Logger) WithContext(ctx context.Context) *Logger {
	newLogger := *l

	if runID := GetRunID(ctx); runID != "" {
		newLogger.logger = l.logger.With().Str(constants.ContextKeyRunID, runID).Logger()
	}

	return &newLogger
}

// WithField returns a logger with an additional field
func (l *Logger) WithField(key string, value any) *Logger {
	newLogger := *l
	newLogger.logger = l.logger.With().Interface(key, l.maskSensitive(key, value)).Logger()
	return &newLogger
}

// WithFields returns a logger with additional fields
func (l *Logger) WithFields(fields map[string]any) *Logger {
	newLogger := *l
	ctx := l.logger.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, l.maskSensitive(key, value))
	}
	newLogger.logger = ctx.Logger()
	return &newLogger
}

// maskSensitive masks sensitive structured field values (case-insensitive)
func (l *Logger) maskSensitive(key string, value any) any {
	if l.sensitiveFields[strings.ToLower(key)] {
		return l.config.Placeholder
	}
	return value
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.logger.Error().Msg(msg)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}

// ErrorWithErr logs an error with the error object
func (l *Logger) ErrorWithErr(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// LogSlowQuery logs a slow query warning
func (l *Logger) LogSlowQuery(query string, duration time.Duration, args ...any) {
	if duration >= l.config.SlowQueryThreshold {
		l.logger.Warn().
			Str("query", query).
			Dur("duration", duration).
			Interface("args", args).
			Msg("Slow query detected")
	}
}

// Context key for run ID
type contextKey string

const runIDKey contextKey = constants.ContextKeyRunID

// NewRunID generates a fresh run identifier for one CLI invocation.
func NewRunID() string {
	return uuid.New().String()
}

// SetRunID sets the run ID in the context
func SetRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID gets the run ID from the context
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// Global logger instance
var globalLogger *Logger

// Init initializes the global logger
func Init(config LoggerConfig) {
	globalLogger = NewLogger(config)
}

// GetLogger returns the global logger
func GetLogger() *Logger {
	if globalLogger == nil {
		// Initialize with default config
		globalLogger = NewLogger(LoggerConfig{
			Level: LevelInfo,
		})
	}
	return globalLogger
}

// Debug logs a debug message using the global logger
func Debug(msg string) {
	GetLogger().Debug(msg)
}

// Debugf logs a formatted debug message using the global logger
func Debugf(format string, args ...any) {
	GetLogger().Debugf(format, args...)
}

// Info logs an info message using the global logger
func Info(msg string) {
	GetLogger().Info(msg)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...any) {
	GetLogger().Infof(format, args...)
}

// Warn logs a warning message using the global logger
func Warn(msg string) {
	GetLogger().Warn(msg)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...any) {
	GetLogger().Warnf(format, args...)
}

// Error logs an error message using the global logger
func Error(msg string) {
	GetLogger().Error(msg)
}

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...any) {
	GetLogger().Errorf(format, args...)
}

// ErrorWithErr logs an error with the error object using the global logger
func ErrorWithErr(msg string, err error) {
	GetLogger().ErrorWithErr(msg, err)
}
