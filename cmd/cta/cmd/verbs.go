package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	"github.com/msto63/cta/internal/tui"
	"github.com/msto63/cta/pkg/cta"
	"github.com/msto63/cta/pkg/tcllist"
)

var configCmd = &cobra.Command{
	Use:   "config <handle> name=value...",
	Short: "Set attributes on an object",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		attrs, err := parseAttrs(args[1:])
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *cta.Session) error {
			reply, err := s.Config(ctx, args[0], attrs...)
			return printReply(cmd, reply, err)
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get <handle> [name...]",
	Short: "Read all or selected attributes of an object",
	Long: `Read attributes of an object.

Without names every attribute is read and shown as a table. With names the
engine reply is printed as is.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(ctx context.Context, s *cta.Session) error {
			res, err := s.Get(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			if res.Decoded() {
				printDict(cmd, args[0], res.Attrs)
				return nil
			}
			return printReply(cmd, res.Raw, nil)
		})
	},
}

var createUnder string

var createCmd = &cobra.Command{
	Use:   "create <type> [name=value...]",
	Short: "Create an object and print its handle",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attrs, err := parseAttrs(args[1:])
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *cta.Session) error {
			handle, err := s.Create(ctx, args[0], createUnder, attrs...)
			return printReply(cmd, handle, err)
		})
	},
}

var performCmd = &cobra.Command{
	Use:   "perform <command> [name=value...]",
	Short: "Run an engine command and show its result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attrs, err := parseAttrs(args[1:])
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *cta.Session) error {
			result, err := s.Perform(ctx, args[0], attrs...)
			if err != nil {
				return err
			}
			printDict(cmd, args[0], result)
			return nil
		})
	},
}

// simpleCommand builds a command taking exactly one argument
func simpleCommand(use, short string, op func(s *cta.Session, ctx context.Context, arg string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(ctx context.Context, s *cta.Session) error {
				reply, err := op(s, ctx, args[0])
				return printReply(cmd, reply, err)
			})
		},
	}
}

func init() {
	createCmd.Flags().StringVar(&createUnder, "under", "", "parent object handle")

	rootCmd.AddCommand(
		configCmd,
		getCmd,
		createCmd,
		simpleCommand("delete <handle>", "Delete an object", (*cta.Session).Delete),
		simpleCommand("connect <address>", "Connect to a chassis", (*cta.Session).Connect),
		simpleCommand("disconnect <address>", "Disconnect from a chassis", (*cta.Session).Disconnect),
		simpleCommand("reserve <//chassis/slot/port>", "Reserve a port", (*cta.Session).Reserve),
		simpleCommand("release <//chassis/slot/port>", "Release a port", (*cta.Session).Release),
		performCmd,
	)
}

func printReply(cmd *cobra.Command, reply string, err error) error {
	if err != nil {
		return err
	}
	if reply != "" {
		fmt.Fprintln(cmd.OutOrStdout(), reply)
	}
	return nil
}

func printDict(cmd *cobra.Command, title string, d *tcllist.Dict) {
	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBox(title, tui.RenderDict(d)))
}

func usageError(format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).WithCode(mdwerror.CodeInvalidArgument)
}
