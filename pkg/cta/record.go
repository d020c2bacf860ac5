// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     cta
// Description: Command records handed to a Recorder
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cta

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record describes one executed engine command
type Record struct {
	ID        string
	SessionID string
	Time      time.Time
	Operation string
	Call      string
	Command   string
	Result    string
	Err       error
	Duration  time.Duration
	Attrs     map[string]string
}

// Failed reports whether the engine rejected the command
func (r Record) Failed() bool {
	return r.Err != nil
}

// Recorder receives executed commands, e.g. to persist a journal
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(ctx context.Context, rec Record) error

// Record calls f
func (f RecorderFunc) Record(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}

func (s *Session) record(ctx context.Context, rec Record) {
	if s.recorder == nil {
		return
	}
	rec.ID = uuid.New().String()
	rec.SessionID = s.id
	rec.Time = time.Now().Add(-rec.Duration)
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.logger.WarnWithErr("Failed to record command", err)
	}
}
