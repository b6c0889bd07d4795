// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     log
// Description: Logger type with contextual fields, backed by logrus
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package log

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	tperror "github.com/msto63/toypeg/pkg/core/error"
)

// Fields holds structured key-value data attached to a log entry
type Fields map[string]interface{}

// Logger is a structured logger with contextual fields. Derived loggers share
// the underlying output, level and formatter of their parent.
type Logger struct {
	entry *logrus.Entry
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a new logger writing JSON at info level to stdout
func New() *Logger {
	return NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	base := logrus.New()
	base.SetLevel(config.Level.logrus())
	base.SetFormatter(config.Format.formatter())
	if config.Output == nil {
		base.SetOutput(os.Stdout)
	} else {
		base.SetOutput(config.Output)
	}

	entry := logrus.NewEntry(base)
	if config.Name != "" {
		entry = entry.WithField("logger", config.Name)
	}
	return &Logger{entry: entry}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal, Output: io.Discard})
}

// WithName sets the logger name
func (l *Logger) WithName(name string) *Logger {
	return l.WithField("logger", name)
}

// WithField adds a persistent field to all log entries
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithFields adds persistent fields to all log entries
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithRequestID sets the request ID context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs a fatal level message and exits the program
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.with(nil, fields...).Fatal(message)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs err at a level derived from its severity. Structured errors
// contribute their code and details as fields.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var e *tperror.Error
	if !errors.As(err, &e) {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     e.Code().String(),
		"error_severity": e.Severity().String(),
	}
	if op := e.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range e.Details() {
		fields["error_"+k] = v
	}

	switch e.Severity() {
	case tperror.SeverityLow:
		l.log(LevelInfo, err.Error(), err, fields)
	case tperror.SeverityMedium:
		l.log(LevelWarn, err.Error(), err, fields)
	default:
		l.log(LevelError, err.Error(), err, fields)
	}
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return l.entry.Logger.IsLevelEnabled(level.logrus())
}

// SetLevel sets the log level. The change is visible to every logger derived
// from the same root.
func (l *Logger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(level.logrus())
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	switch l.entry.Logger.GetLevel() {
	case logrus.TraceLevel:
		return LevelTrace
	case logrus.DebugLevel:
		return LevelDebug
	case logrus.WarnLevel:
		return LevelWarn
	case logrus.ErrorLevel:
		return LevelError
	case logrus.FatalLevel, logrus.PanicLevel:
		return LevelFatal
	default:
		return LevelInfo
	}
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !l.IsLevelEnabled(level) {
		return
	}
	l.with(err, fields...).Log(level.logrus(), message)
}

func (l *Logger) with(err error, fields ...Fields) *logrus.Entry {
	entry := l.entry
	for _, set := range fields {
		if len(set) > 0 {
			entry = entry.WithFields(logrus.Fields(set))
		}
	}
	if err != nil {
		entry = entry.WithError(err)
	}
	return entry
}

var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Debug logs a debug message using the default logger
func Debug(message string, fields ...Fields) {
	defaultLogger.Debug(message, fields...)
}

// Info logs an info message using the default logger
func Info(message string, fields ...Fields) {
	defaultLogger.Info(message, fields...)
}

// Warn logs a warning message using the default logger
func Warn(message string, fields ...Fields) {
	defaultLogger.Warn(message, fields...)
}

// Error logs an error message using the default logger
func Error(message string, fields ...Fields) {
	defaultLogger.Error(message, fields...)
}
