// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     journal
// Description: Persistent journal of executed engine commands
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

// Package journal stores every command a session sends to the engine so
// runs can be inspected after the fact.
package journal

import (
	"context"
	"time"

	"github.com/msto63/cta/pkg/cta"
)

// Entry is one journaled engine command
type Entry struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
	Operation string            `json:"operation"`
	Call      string            `json:"call"`
	Command   string            `json:"command"`
	Result    string            `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Failed reports whether the engine rejected the command
func (e *Entry) Failed() bool {
	return e.Error != ""
}

// FromRecord converts a session record into an entry
func FromRecord(rec cta.Record) *Entry {
	e := &Entry{
		ID:        rec.ID,
		SessionID: rec.SessionID,
		Timestamp: rec.Time,
		Operation: rec.Operation,
		Call:      rec.Call,
		Command:   rec.Command,
		Result:    rec.Result,
		Duration:  rec.Duration,
		Attrs:     rec.Attrs,
	}
	if rec.Err != nil {
		e.Error = rec.Err.Error()
	}
	return e
}

// Filter defines criteria for querying entries
type Filter struct {
	SessionID  string
	Operation  string
	FailedOnly bool
	Since      time.Time
	Until      time.Time
	Limit      int
	Offset     int
}

// Stats summarizes a journal
type Stats struct {
	Total       int64
	Failed      int64
	Sessions    int64
	ByOperation map[string]int64
	LastEntry   time.Time
}

// Store defines journal persistence
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// Recorder adapts a Store to cta.Recorder
func Recorder(store Store) cta.Recorder {
	return cta.RecorderFunc(func(ctx context.Context, rec cta.Record) error {
		return store.Append(ctx, FromRecord(rec))
	})
}
