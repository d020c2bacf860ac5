// Package log provides the structured logger used by every cta component.
//
// Package: log
// Title: cta Structured Logging
// Description: Leveled, structured logging with contextual fields, text and
//              JSON output and operation timers. The level set mirrors the
//              five severities used by the engine session log
//              (DEBUG, INFO, WARNING, ERROR, CRITICAL) and the text format
//              produces one timestamped line per entry.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-16 v0.2.0: Session log levels, plain text layout, shared writer lock
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelInfo,
//		Format: log.FormatText,
//		Output: file,
//	}).WithField("component", "session")
//
//	logger.Info("Log Path: /tmp/logs")
//	logger.Debug("engine command", log.Fields{"command": cmd})
//
//	timer := logger.StartTimer("eval")
//	// ... talk to the engine
//	timer.Stop()
package log
