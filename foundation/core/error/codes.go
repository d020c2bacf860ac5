// File: codes.go
// Title: Error Codes
// Description: Machine-readable error codes used across the session, the
//              interpreter transport and the supporting tools.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard error codes
// - 2026-10-16 v0.2.0: Replaced service codes with engine session codes

package error

// Code identifies the class of an error
type Code string

const (
	// CodeUnknown is used for wrapped errors of unknown origin
	CodeUnknown Code = "UNKNOWN"

	// CodeEngine marks a failure reported by the engine for a command
	CodeEngine Code = "ENGINE"

	// CodeBootstrap marks a failure while starting the session
	CodeBootstrap Code = "BOOTSTRAP"

	// CodeDecode marks a result that is not a well-formed list
	CodeDecode Code = "DECODE"

	// CodeInvalidArgument marks a caller error detected before the engine is called
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeSessionActive is returned when a second session is opened
	CodeSessionActive Code = "SESSION_ACTIVE"

	// CodeSessionClosed is returned for calls on a closed session
	CodeSessionClosed Code = "SESSION_CLOSED"

	// CodeTransport marks a broken connection to the interpreter process
	CodeTransport Code = "TRANSPORT"

	// CodeConfig marks an unreadable or invalid configuration
	CodeConfig Code = "CONFIG"

	// CodeScript marks an invalid batch script
	CodeScript Code = "SCRIPT"

	// CodeStorage marks a journal storage failure
	CodeStorage Code = "STORAGE"
)

// String returns the code text
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether c is one of the defined codes
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeEngine, CodeBootstrap, CodeDecode, CodeInvalidArgument,
		CodeSessionActive, CodeSessionClosed, CodeTransport, CodeConfig,
		CodeScript, CodeStorage:
		return true
	}
	return false
}

// ExitCode maps a code to a process exit status for the command line tool
func (c Code) ExitCode() int {
	switch c {
	case CodeEngine:
		return 2
	case CodeBootstrap, CodeTransport:
		return 3
	case CodeInvalidArgument, CodeConfig, CodeScript:
		return 4
	default:
		return 1
	}
}
