package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mdwlog "github.com/msto63/cta/foundation/core/log"
	"github.com/msto63/cta/internal/journal"
	"github.com/msto63/cta/pkg/cta"
)

// openJournal returns the configured journal store, or a memory store when
// the journal is disabled
func openJournal(ctx context.Context) (journal.Store, error) {
	if !cfg.Journal.Enabled {
		return journal.NewMemoryStore(), nil
	}

	store, err := journal.NewSQLiteStore(journal.SQLiteConfig{Path: cfg.Journal.Path})
	if err != nil {
		return nil, err
	}

	if retention := cfg.Journal.Retention.Duration; retention > 0 {
		removed, err := store.Prune(ctx, retention)
		if err != nil {
			console.WarnWithErr("Failed to prune journal", err)
		} else if removed > 0 {
			console.Debug("journal pruned", mdwlog.Fields{"removed": removed})
		}
	}
	return store, nil
}

// withSession opens the journal and an engine session, runs fn and closes
// both. SIGINT and SIGTERM cancel the context passed to fn.
func withSession(parent context.Context, fn func(ctx context.Context, s *cta.Session) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var mirror io.Writer
	if verbose {
		mirror = os.Stderr
	}

	session, err := cta.Open(ctx, cta.Options{
		APIPath:        cfg.Session.APIPath,
		LogPath:        cfg.Session.LogPath,
		LogLevel:       cfg.Session.LogLevel,
		Package:        cfg.Session.Package,
		TclshPath:      cfg.Session.Tclsh,
		StartupTimeout: cfg.Session.StartupTimeout.Duration,
		Recorder:       journal.Recorder(store),
		Mirror:         mirror,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	console.Debug("session opened", mdwlog.Fields{"session": session.ID(), "log_dir": session.LogDir()})
	return fn(ctx, session)
}

// parseAttrs converts name=value arguments. Values in brackets are passed
// to the engine as commands.
func parseAttrs(args []string) ([]cta.Attr, error) {
	attrs := make([]cta.Attr, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, usageError("expected name=value, got %q", arg)
		}
		v := cta.String(value)
		if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			v = cta.Command(value)
		}
		attrs = append(attrs, cta.Attr{Name: name, Value: v})
	}
	return attrs, nil
}
