// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     logging
// Description: Session log directory resolution and log file creation
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// EnvLogDir overrides the default session log directory
	EnvLogDir = "CTA_LOG_OUTPUT_DIRECTORY"

	// LogFileName is the name of the session log inside the log directory
	LogFileName = "cta.log"

	// dirTimestampLayout names default log directories, e.g. 2026-10-16-09-30-00
	dirTimestampLayout = "2006-01-02-15-04-05"
)

// DefaultLogDir returns ~/Spirent/CTA/Logs/<timestamp>_PID<pid>
func DefaultLogDir(now time.Time, pid int) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	name := fmt.Sprintf("%s_PID%d", now.Format(dirTimestampLayout), pid)
	return filepath.Join(home, "Spirent", "CTA", "Logs", name), nil
}

// ResolveLogDir picks the session log directory: explicit when set, else
// the EnvLogDir variable read through getenv, else DefaultLogDir. The
// result is absolute.
func ResolveLogDir(explicit string, getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	dir := explicit
	if dir == "" {
		dir = getenv(EnvLogDir)
	}
	if dir == "" {
		var err error
		dir, err = DefaultLogDir(time.Now(), os.Getpid())
		if err != nil {
			return "", err
		}
	}
	return filepath.Abs(dir)
}

// OpenLogFile creates dir when missing and opens dir/LogFileName for
// writing, truncating any previous content.
func OpenLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
