// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick the log level of an error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-16 v0.2.0: Defaults for engine session codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a caller mistake with no effect on the session
	SeverityLow Severity = iota

	// SeverityMedium is a failed command; the session stays usable
	SeverityMedium

	// SeverityHigh is a failure that leaves the session unusable
	SeverityHigh

	// SeverityCritical is a failure to start the session at all
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// SeverityForCode returns the default severity for errors with code
func SeverityForCode(code Code) Severity {
	switch code {
	case CodeInvalidArgument, CodeConfig, CodeScript, CodeSessionActive, CodeSessionClosed:
		return SeverityLow
	case CodeTransport:
		return SeverityHigh
	case CodeBootstrap:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
