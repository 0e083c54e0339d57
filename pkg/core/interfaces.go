package core

import "log"

// Logger interface for renderer and animation logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger writes through the standard log package
type DefaultLogger struct{}

// NewDefaultLogger creates a logger that writes to the standard logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// Printf implements Logger
func (l *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(string, ...interface{}) {}
