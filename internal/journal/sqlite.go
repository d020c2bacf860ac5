// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     journal
// Description: SQLite journal store
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/cta/foundation/core/error"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return SQLiteConfig{
		Path: filepath.Join(home, "Spirent", "CTA", "journal.db"),
	}
}

// NewSQLiteStore opens or creates a journal database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, storageError(err, "create journal directory")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, storageError(err, "open journal")
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "initialize journal schema")
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS commands (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		operation TEXT NOT NULL,
		call TEXT NOT NULL,
		command TEXT NOT NULL,
		result TEXT,
		error TEXT,
		duration_ns INTEGER NOT NULL,
		attrs BLOB
	);

	CREATE INDEX IF NOT EXISTS idx_commands_timestamp ON commands(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_commands_session ON commands(session_id);
	CREATE INDEX IF NOT EXISTS idx_commands_operation ON commands(operation);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores an entry. Missing IDs and timestamps are filled in.
func (s *SQLiteStore) Append(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	attrs, err := encodeAttrs(entry.Attrs)
	if err != nil {
		return storageError(err, "encode attributes")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO commands (id, session_id, timestamp, operation, call, command, result, error, duration_ns, attrs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Timestamp.UTC(), entry.Operation, entry.Call, entry.Command,
		entry.Result, nullString(entry.Error), int64(entry.Duration), attrs)
	if err != nil {
		return storageError(err, "insert journal entry")
	}
	return nil
}

// Query returns matching entries, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, session_id, timestamp, operation, call, command, result, error, duration_ns, attrs
		FROM commands WHERE 1=1`
	var args []interface{}

	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Operation != "" {
		query += " AND operation = ?"
		args = append(args, filter.Operation)
	}
	if filter.FailedOnly {
		query += " AND error IS NOT NULL"
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}
	if !filter.Until.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.Until.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "query journal")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			entry    Entry
			result   sql.NullString
			errText  sql.NullString
			duration int64
			attrs    []byte
		)
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Timestamp, &entry.Operation,
			&entry.Call, &entry.Command, &result, &errText, &duration, &attrs); err != nil {
			return nil, storageError(err, "scan journal entry")
		}
		entry.Result = result.String
		entry.Error = errText.String
		entry.Duration = time.Duration(duration)
		entry.Timestamp = entry.Timestamp.Local()
		if entry.Attrs, err = decodeAttrs(attrs); err != nil {
			return nil, storageError(err, "scan journal entry")
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "query journal")
	}
	return entries, nil
}

// Stats summarizes the journal
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByOperation: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(error), COUNT(DISTINCT session_id) FROM commands
	`).Scan(&stats.Total, &stats.Failed, &stats.Sessions)
	if err != nil {
		return nil, storageError(err, "count journal entries")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT operation, COUNT(*) FROM commands GROUP BY operation`)
	if err != nil {
		return nil, storageError(err, "count operations")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			op    string
			count int64
		)
		if err := rows.Scan(&op, &count); err != nil {
			return nil, storageError(err, "count operations")
		}
		stats.ByOperation[op] = count
	}

	// A plain column select keeps the DATETIME type for the driver
	var last time.Time
	err = s.db.QueryRowContext(ctx, `SELECT timestamp FROM commands ORDER BY timestamp DESC LIMIT 1`).Scan(&last)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, storageError(err, "read last entry")
	default:
		stats.LastEntry = last.Local()
	}
	return stats, nil
}

// Prune removes entries older than olderThan
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	result, err := s.db.ExecContext(ctx, `DELETE FROM commands WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, storageError(err, "prune journal")
	}
	return result.RowsAffected()
}

// Vacuum optimizes the database
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `VACUUM`)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func storageError(err error, message string) error {
	return mdwerror.Wrap(err, message).WithCode(mdwerror.CodeStorage)
}
