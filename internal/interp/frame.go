// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     interp
// Description: Request/response framing for the interpreter process
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Catch codes reported by the interpreter
const (
	codeOK    = 0
	codeError = 1
)

// readyLine is written by the server once it accepts requests
const readyLine = "ready"

// maxFrame bounds a single response
const maxFrame = 256 << 20

// writeRequest sends one script as "<len>\n<bytes>"
func writeRequest(w io.Writer, script string) error {
	if _, err := fmt.Fprintf(w, "%d\n%s", len(script), script); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	return nil
}

// readResponse reads one "<code> <len>\n<bytes>" response
func readResponse(r *bufio.Reader) (int, string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return 0, "", fmt.Errorf("read response header: %w", err)
	}

	fields := strings.Fields(header)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("malformed response header %q", strings.TrimSpace(header))
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("malformed response code %q", fields[0])
	}
	size, err := strconv.Atoi(fields[1])
	if err != nil || size < 0 || size > maxFrame {
		return 0, "", fmt.Errorf("malformed response length %q", fields[1])
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, "", fmt.Errorf("read response body: %w", err)
	}
	return code, string(buf), nil
}
