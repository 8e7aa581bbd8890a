// Package logger provides structured logging for the feature layer.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry with a fixed component field so every line
// identifies the module that emitted it.
type Logger struct {
	entry *logrus.Entry
}

// NewDefault creates a logger for the named component writing to stderr.
// The level is taken from LOG_LEVEL and defaults to info.
func NewDefault(component string) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		base.SetLevel(lvl)
	}

	return &Logger{entry: base.WithField("component", component)}
}

// WithField returns a logger carrying an additional field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithError returns a logger carrying the error as a field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }
func (l *Logger) Info(msg string)  { l.entry.Info(msg) }
func (l *Logger) Warn(msg string)  { l.entry.Warn(msg) }
func (l *Logger) Error(msg string) { l.entry.Error(msg) }
