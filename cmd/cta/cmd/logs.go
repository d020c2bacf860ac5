package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/cta/internal/journal"
	"github.com/msto63/cta/internal/tui"
	"github.com/msto63/cta/internal/tui/logviewer"
)

var (
	logsSession    string
	logsSearch     string
	logsMax        int
	logsList       bool
	logsFailedOnly bool
	logsOperation  string
	logsPrune      time.Duration
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"journal", "logviewer"},
	Short:   "Browse the command journal",
	Long: `Browse the journal of executed engine commands.

Without --list an interactive viewer starts:

  1 / 2       Toggle OK / failed entries
  o           Cycle the operation filter
  0           Reset filters
  d           Show command and result lines
  p / Space   Pause/Resume auto refresh
  r           Refresh
  a           Toggle auto-scroll
  g / G       Jump to top / bottom
  q / Ctrl+C  Quit`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsSession, "session", "", "only show this session")
	logsCmd.Flags().StringVar(&logsSearch, "search", "", "only show calls containing this text")
	logsCmd.Flags().IntVar(&logsMax, "max", 1000, "maximum number of entries")
	logsCmd.Flags().BoolVar(&logsList, "list", false, "print entries instead of starting the viewer")
	logsCmd.Flags().BoolVar(&logsFailedOnly, "failed", false, "with --list, only failed commands")
	logsCmd.Flags().StringVar(&logsOperation, "op", "", "with --list, only this operation")
	logsCmd.Flags().DurationVar(&logsPrune, "prune", 0, "delete entries older than this and exit")
}

func runLogs(cmd *cobra.Command, args []string) error {
	store, err := journal.NewSQLiteStore(journal.SQLiteConfig{Path: cfg.Journal.Path})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if logsPrune > 0 {
		removed, err := store.Prune(ctx, logsPrune)
		if err != nil {
			return err
		}
		if err := store.Vacuum(ctx); err != nil {
			console.WarnWithErr("Failed to vacuum journal", err)
		}
		fmt.Fprintf(out, "removed %d entries\n", removed)
		return nil
	}

	if !logsList {
		return logviewer.Run(logviewer.Config{
			Store:      store,
			SessionID:  logsSession,
			Search:     logsSearch,
			MaxEntries: logsMax,
		})
	}

	entries, err := store.Query(ctx, journal.Filter{
		SessionID:  logsSession,
		Operation:  logsOperation,
		FailedOnly: logsFailedOnly,
		Limit:      logsMax,
	})
	if err != nil {
		return err
	}

	// Oldest first
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if logsSearch != "" && !strings.Contains(strings.ToLower(e.Call), strings.ToLower(logsSearch)) {
			continue
		}
		line := fmt.Sprintf("%s %s %-10s %s", e.Timestamp.Format("2006-01-02 15:04:05"),
			tui.RenderStatus(!e.Failed()), e.Operation, e.Call)
		if e.Failed() {
			line += tui.RenderHelp("  " + e.Error)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
