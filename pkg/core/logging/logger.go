// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     logging
// Description: Key-value logger wrapper over the foundation logger
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	mdwlog "github.com/msto63/cta/foundation/core/log"
)

// Logger wraps a foundation logger with key-value call style:
//
//	logger.Info("interpreter started", "pid", pid)
type Logger struct {
	*mdwlog.Logger
	name string
}

// New creates a stderr logger named name
func New(name string) *Logger {
	return &Logger{Logger: NewSimpleLogger(name), name: name}
}

// Wrap tags base with a component field
func Wrap(base *mdwlog.Logger, component string) *Logger {
	if base == nil {
		base = mdwlog.GetDefault()
	}
	return &Logger{Logger: base.WithField("component", component), name: component}
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mdwlog.Fields. Non-string keys and
// a dangling final key are dropped.
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mdwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
