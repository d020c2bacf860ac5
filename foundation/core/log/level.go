// File: level.go
// Title: Log Level Definitions
// Description: Defines the five session log severities and their parsing
//              from configuration strings.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2026-10-16 v0.2.0: Reduced to DEBUG..CRITICAL, lenient level names

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelDebug records every engine command and raw result
	LevelDebug Level = iota

	// LevelInfo is used for the session banner and lifecycle events
	LevelInfo

	// LevelWarn indicates potentially harmful situations
	LevelWarn

	// LevelError records failed engine commands
	LevelError

	// LevelCritical records failures that end the session
	LevelCritical
)

// String returns the upper-case level name as written to the log file
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Color returns an ANSI color sequence for terminal output
func (l Level) Color() string {
	switch l {
	case LevelDebug:
		return "\033[36m"
	case LevelInfo:
		return "\033[32m"
	case LevelWarn:
		return "\033[33m"
	case LevelError:
		return "\033[31m"
	case LevelCritical:
		return "\033[35m"
	default:
		return "\033[0m"
	}
}

// ShouldLog reports whether a message at this level passes minLevel
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel parses a level name. Matching is case-insensitive and accepts
// the common aliases WARN and FATAL.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL", "FATAL":
		return LevelCritical, nil
	default:
		return LevelDebug, &ParseError{Value: level, Type: "level"}
	}
}

// LevelFromName maps a configured level name to a Level. Anything that is
// not a known name selects LevelDebug.
func LevelFromName(name string) Level {
	level, err := ParseLevel(name)
	if err != nil {
		return LevelDebug
	}
	return level
}

// ParseError represents an error parsing a log level or format
type ParseError struct {
	Value string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid log " + e.Type + ": " + e.Value
}

// AllLevels returns all levels in ascending order
func AllLevels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical}
}

// DefaultLevel returns the level used when none is configured
func DefaultLevel() Level {
	return LevelDebug
}
