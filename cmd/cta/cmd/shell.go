package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/msto63/cta/internal/shell"
	"github.com/msto63/cta/pkg/cta"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive engine console",
	Long: `Open an interactive engine console.

The session stays open until 'exit'. Replies can be stored in variables:

  $port = create port project1 location=//10.0.0.1/1/1
  get $port`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(ctx context.Context, s *cta.Session) error {
			sh := shell.New(s, shell.Options{
				Prompt:      cfg.Shell.Prompt,
				HistoryFile: cfg.Shell.HistoryFile,
				Logger:      s.Logger(),
			})
			return sh.Run(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
