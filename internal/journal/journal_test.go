package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	"github.com/msto63/cta/pkg/cta"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "journal.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// stores runs fn against every Store implementation
func stores(t *testing.T, fn func(t *testing.T, store Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
}

func seed(t *testing.T, store Store, base time.Time) {
	t.Helper()
	ctx := context.Background()
	entries := []*Entry{
		{SessionID: "s1", Timestamp: base, Operation: "create", Call: "create(objecttype=port, under=project1)",
			Command: "stc::create port -under project1", Result: "port1", Attrs: map[string]string{"location": "//10.0.0.1/1/1"}},
		{SessionID: "s1", Timestamp: base.Add(time.Second), Operation: "config", Call: "config(objecthandle=port1)",
			Command: "stc::config port1 -name {p 1}"},
		{SessionID: "s2", Timestamp: base.Add(2 * time.Second), Operation: "perform", Call: "perform(command=Bogus)",
			Command: "stc::perform Bogus", Error: "invalid command name"},
	}
	for _, e := range entries {
		require.NoError(t, store.Append(ctx, e))
		assert.NotEmpty(t, e.ID)
	}
}

func TestStore_QueryNewestFirst(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		base := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
		seed(t, store, base)

		entries, err := store.Query(context.Background(), Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "perform", entries[0].Operation)
		assert.Equal(t, "config", entries[1].Operation)
		assert.Equal(t, "create", entries[2].Operation)

		created := entries[2]
		assert.Equal(t, "port1", created.Result)
		assert.Equal(t, map[string]string{"location": "//10.0.0.1/1/1"}, created.Attrs)
		assert.True(t, created.Timestamp.Equal(base))
		assert.Nil(t, entries[1].Attrs)
	})
}

func TestStore_QueryFilters(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		base := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
		seed(t, store, base)
		ctx := context.Background()

		tests := []struct {
			name   string
			filter Filter
			want   []string
		}{
			{"session", Filter{SessionID: "s1"}, []string{"config", "create"}},
			{"operation", Filter{Operation: "create"}, []string{"create"}},
			{"failed", Filter{FailedOnly: true}, []string{"perform"}},
			{"since", Filter{Since: base.Add(time.Second)}, []string{"perform", "config"}},
			{"until", Filter{Until: base.Add(time.Second)}, []string{"config", "create"}},
			{"limit", Filter{Limit: 1}, []string{"perform"}},
			{"offset", Filter{Limit: 1, Offset: 1}, []string{"config"}},
			{"offset only", Filter{Offset: 2}, []string{"create"}},
			{"past end", Filter{Offset: 5}, nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				entries, err := store.Query(ctx, tt.filter)
				require.NoError(t, err)
				var ops []string
				for _, e := range entries {
					ops = append(ops, e.Operation)
				}
				assert.Equal(t, tt.want, ops)
			})
		}
	})
}

func TestStore_Stats(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		empty, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, empty.Total)
		assert.True(t, empty.LastEntry.IsZero())

		base := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
		seed(t, store, base)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
		assert.Equal(t, int64(1), stats.Failed)
		assert.Equal(t, int64(2), stats.Sessions)
		assert.Equal(t, map[string]int64{"create": 1, "config": 1, "perform": 1}, stats.ByOperation)
		assert.True(t, stats.LastEntry.Equal(base.Add(2*time.Second)))
	})
}

func TestStore_Prune(t *testing.T) {
	stores(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		require.NoError(t, store.Append(ctx, &Entry{SessionID: "old", Timestamp: time.Now().Add(-48 * time.Hour), Operation: "get"}))
		require.NoError(t, store.Append(ctx, &Entry{SessionID: "new", Operation: "get"}))

		removed, err := store.Prune(ctx, 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		entries, err := store.Query(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "new", entries[0].SessionID)
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, &Entry{SessionID: "s1", Operation: "reserve", Command: "stc::reserve //10.0.0.1/1/1"}))
	require.NoError(t, store.Vacuum(ctx))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Query(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "stc::reserve //10.0.0.1/1/1", entries[0].Command)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &Entry{ID: "dup", SessionID: "s1", Operation: "get"}))
	err := store.Append(ctx, &Entry{ID: "dup", SessionID: "s1", Operation: "get"})
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeStorage))
}

func TestMemoryStore_QueryReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, &Entry{SessionID: "s1", Operation: "get", Result: "a"}))

	entries, err := store.Query(ctx, Filter{})
	require.NoError(t, err)
	entries[0].Result = "changed"

	again, err := store.Query(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Result)
}

func TestFromRecord(t *testing.T) {
	now := time.Now()
	rec := cta.Record{
		ID:        "r1",
		SessionID: "s1",
		Time:      now,
		Operation: "delete",
		Call:      "delete(handle=port1)",
		Command:   "stc::delete port1",
		Err:       errors.New("object not found"),
		Duration:  5 * time.Millisecond,
	}

	e := FromRecord(rec)
	assert.Equal(t, "r1", e.ID)
	assert.Equal(t, "s1", e.SessionID)
	assert.Equal(t, "stc::delete port1", e.Command)
	assert.Equal(t, "object not found", e.Error)
	assert.True(t, e.Failed())
	assert.Equal(t, 5*time.Millisecond, e.Duration)
}

func TestRecorder(t *testing.T) {
	store := NewMemoryStore()
	rec := Recorder(store)

	err := rec.Record(context.Background(), cta.Record{SessionID: "s1", Operation: "connect", Result: ""})
	require.NoError(t, err)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(0), stats.Failed)
}

func TestAttrCodec(t *testing.T) {
	data, err := encodeAttrs(nil)
	require.NoError(t, err)
	assert.Nil(t, data)

	attrs := map[string]string{"b": "2", "a": "1", "empty": ""}
	first, err := encodeAttrs(attrs)
	require.NoError(t, err)
	second, err := encodeAttrs(map[string]string{"empty": "", "a": "1", "b": "2"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	decoded, err := decodeAttrs(first)
	require.NoError(t, err)
	assert.Equal(t, attrs, decoded)

	_, err = decodeAttrs([]byte{0xff, 0x00})
	assert.Error(t, err)
}
