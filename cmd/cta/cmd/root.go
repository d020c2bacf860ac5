package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/cta/foundation/core/log"
	"github.com/msto63/cta/internal/tui"
	"github.com/msto63/cta/pkg/core/config"
	"github.com/msto63/cta/pkg/core/logging"
)

var (
	cfgFile     string
	apiPath     string
	logPath     string
	logLevel    levelValue
	logFormat   formatValue
	journalPath string
	noJournal   bool
	verbose     bool

	// cfg is loaded before every command runs
	cfg *config.Config

	// console logs front-end diagnostics to stderr
	console *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cta",
	Short: "Spirent TestCenter Conformance command line",
	Long: `cta drives the Spirent TestCenter Conformance engine.

Every command opens an engine session, runs one operation and closes the
session again. Use 'cta shell' for an interactive session or 'cta run' to
execute YAML scripts. Executed commands are kept in a journal that
'cta logs' displays.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the command line
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.RenderError(err.Error()))
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $CTA_CONFIG, ./cta.toml, ~/.config/cta/config.toml)")
	flags.StringVar(&apiPath, "api-path", "", "engine installation directory")
	flags.StringVar(&logPath, "log-path", "", "session log directory")
	flags.Var(&logLevel, "log-level", "session log level: DEBUG, INFO, WARNING, ERROR or CRITICAL")
	flags.Var(&logFormat, "log-format", "console log format: text or json")
	flags.StringVar(&journalPath, "journal", "", "journal database path")
	flags.BoolVar(&noJournal, "no-journal", false, "do not record commands in the journal")
	flags.BoolVarP(&verbose, "verbose", "v", false, "mirror the session log to stderr")
}

// loadConfig merges config file, environment and flags
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-path") {
		cfg.Session.APIPath = apiPath
	}
	if flags.Changed("log-path") {
		cfg.Session.LogPath = logPath
	}
	if flags.Changed("log-level") {
		cfg.Session.LogLevel = logLevel.String()
	}
	if flags.Changed("journal") {
		cfg.Journal.Path = journalPath
		cfg.Journal.Enabled = true
	}
	if noJournal {
		cfg.Journal.Enabled = false
	}

	consoleLevel := "WARNING"
	if verbose {
		consoleLevel = "DEBUG"
	}
	console = logging.NewLogger(logging.LoggerConfig{
		Name:   "cta",
		Level:  consoleLevel,
		Format: logFormat.String(),
		Output: os.Stderr,
	})
	console.Debug("configuration loaded", mdwlog.Fields{
		"api_path": cfg.Session.APIPath,
		"journal":  cfg.Journal.Enabled,
	})
	return nil
}
