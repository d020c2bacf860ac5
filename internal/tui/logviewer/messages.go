// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     logviewer
// Description: Message types for async operations in the journal viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package logviewer

import (
	"time"

	"github.com/msto63/cta/internal/journal"
)

// Message types for tea.Cmd async operations

// entriesLoadedMsg is sent when entries are read from the journal
type entriesLoadedMsg struct {
	entries []*journal.Entry
	err     error
}

// statsLoadedMsg is sent when journal stats are loaded
type statsLoadedMsg struct {
	stats *journal.Stats
	err   error
}

// tickMsg is used for periodic updates
type tickMsg time.Time

// refreshMsg signals a journal refresh
type refreshMsg struct{}
