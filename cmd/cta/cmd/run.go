package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/cta/internal/script"
	"github.com/msto63/cta/internal/tui"
	"github.com/msto63/cta/pkg/cta"
)

var runVars []string

var runCmd = &cobra.Command{
	Use:   "run <script.yaml|dir>...",
	Short: "Execute YAML scripts in one engine session",
	Long: `Execute YAML scripts in one engine session.

Scripts run in the given order; a directory runs every .yaml and .yml file
in it by name. Execution stops at the first step that fails unexpectedly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScripts,
}

func init() {
	runCmd.Flags().StringArrayVar(&runVars, "var", nil, "set a script variable (name=value, repeatable)")
	rootCmd.AddCommand(runCmd)
}

func runScripts(cmd *cobra.Command, args []string) error {
	scripts, err := loadScripts(args)
	if err != nil {
		return err
	}

	overrides, err := parseAttrs(runVars)
	if err != nil {
		return err
	}
	for _, s := range scripts {
		if s.Vars == nil {
			s.Vars = make(map[string]string, len(overrides))
		}
		for _, v := range overrides {
			s.Vars[v.Name] = v.Value.Text()
		}
	}

	out := cmd.OutOrStdout()
	return withSession(cmd.Context(), func(ctx context.Context, s *cta.Session) error {
		runner := script.NewRunner(s, s.Logger())
		runner.OnStep(func(step script.Step, result script.StepResult) {
			printStep(out, step, result)
		})

		for _, sc := range scripts {
			fmt.Fprintln(out, tui.RenderTitle(sc.Name))
			report, err := runner.Run(ctx, sc)
			fmt.Fprintf(out, "%s  %d steps, %d skipped, %s\n\n",
				tui.RenderStatus(report.Passed), len(report.Steps), report.Skipped,
				report.Duration.Round(time.Millisecond))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func loadScripts(args []string) ([]*script.Script, error) {
	var scripts []*script.Script
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return nil, usageError("cannot read %s: %v", path, err)
		}
		if info.IsDir() {
			dirScripts, err := script.LoadDirectory(path)
			if err != nil {
				return nil, err
			}
			scripts = append(scripts, dirScripts...)
			continue
		}
		s, err := script.Load(path)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}

func printStep(w io.Writer, step script.Step, result script.StepResult) {
	label := step.Description
	if label == "" {
		label = step.Op + " " + step.Target
	}
	line := fmt.Sprintf("  %s %2d. %s", tui.RenderStatus(result.Passed(step)), result.Index+1, label)
	if result.Err != nil {
		line += tui.RenderHelp("  (" + result.Err.Error() + ")")
	}
	fmt.Fprintln(w, line)
}
