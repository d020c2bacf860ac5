package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/cta/foundation/core/error"
)

// Environment variables read by LoadFromEnv
const (
	EnvConfig    = "CTA_CONFIG"
	EnvAPIPath   = "CTA_API_PATH"
	EnvLogPath   = "CTA_LOG_OUTPUT_DIRECTORY"
	EnvLogLevel  = "CTA_LOG_LEVEL"
	EnvTclsh     = "CTA_TCLSH"
	EnvJournal   = "CTA_JOURNAL"
	EnvDotEnv    = ".env"
	DefaultLevel = "DEBUG"
)

// Config holds the complete application configuration
type Config struct {
	Session SessionConfig `toml:"session" yaml:"session"`
	Journal JournalConfig `toml:"journal" yaml:"journal"`
	Shell   ShellConfig   `toml:"shell" yaml:"shell"`
}

// SessionConfig holds engine session settings
type SessionConfig struct {
	APIPath        string   `toml:"api_path" yaml:"api_path"`
	LogPath        string   `toml:"log_path" yaml:"log_path"`
	LogLevel       string   `toml:"log_level" yaml:"log_level"`
	Package        string   `toml:"package" yaml:"package"`
	Tclsh          string   `toml:"tclsh" yaml:"tclsh"`
	StartupTimeout Duration `toml:"startup_timeout" yaml:"startup_timeout"`
}

// JournalConfig holds command journal settings
type JournalConfig struct {
	Enabled   bool     `toml:"enabled" yaml:"enabled"`
	Path      string   `toml:"path" yaml:"path"`
	Retention Duration `toml:"retention" yaml:"retention"`
}

// ShellConfig holds interactive console settings
type ShellConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		Journal: JournalConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, mdwerror.Newf("config file not found: %s", path).WithCode(mdwerror.CodeConfig)
		}
		return nil, mdwerror.Wrap(err, "read config").WithCode(mdwerror.CodeConfig)
	}

	// Journal defaults to enabled unless the file says otherwise
	cfg := Config{Journal: JournalConfig{Enabled: true}}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfig).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads .env, then the file named by CTA_CONFIG or the first
// default location found, then applies CTA_* overrides. Without any config
// file the defaults are used.
func LoadFromEnv() (*Config, error) {
	if err := loadDotEnv(EnvDotEnv); err != nil {
		return nil, mdwerror.Wrap(err, "load .env").WithCode(mdwerror.CodeConfig)
	}

	path := os.Getenv(EnvConfig)
	if path == "" {
		path = findDefault()
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths lists the locations searched when CTA_CONFIG is unset
func DefaultPaths() []string {
	paths := []string{
		"./cta.toml",
		"./cta.yaml",
		"./configs/cta.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "cta", "config.toml"),
			filepath.Join(home, ".config", "cta", "config.yaml"),
		)
	}
	return paths
}

func findDefault() string {
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Session
	if c.Session.LogLevel == "" {
		c.Session.LogLevel = DefaultLevel
	}
	if c.Session.Package == "" {
		c.Session.Package = "SpirentTestCenterConformance"
	}
	if c.Session.Tclsh == "" {
		c.Session.Tclsh = "tclsh"
	}
	if c.Session.StartupTimeout.Duration == 0 {
		c.Session.StartupTimeout.Duration = 10 * time.Second
	}

	// Journal
	if c.Journal.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Journal.Path = filepath.Join(home, "Spirent", "CTA", "journal.db")
	}
	if c.Journal.Retention.Duration == 0 {
		c.Journal.Retention.Duration = 30 * 24 * time.Hour
	}

	// Shell
	if c.Shell.Prompt == "" {
		c.Shell.Prompt = "cta> "
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Session.APIPath = os.ExpandEnv(c.Session.APIPath)
	c.Session.LogPath = os.ExpandEnv(c.Session.LogPath)
	c.Session.Tclsh = os.ExpandEnv(c.Session.Tclsh)
	c.Journal.Path = os.ExpandEnv(c.Journal.Path)
	c.Shell.HistoryFile = os.ExpandEnv(c.Shell.HistoryFile)
}

// applyEnv overrides values with non-empty CTA_* variables
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIPath); v != "" {
		c.Session.APIPath = v
	}
	if v := getenv(EnvLogPath); v != "" {
		c.Session.LogPath = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Session.LogLevel = v
	}
	if v := getenv(EnvTclsh); v != "" {
		c.Session.Tclsh = v
	}
	if v := getenv(EnvJournal); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return mdwerror.Newf("invalid %s value %q", EnvJournal, v).WithCode(mdwerror.CodeConfig)
		}
		c.Journal.Enabled = enabled
	}
	return nil
}

// String renders the configuration as TOML
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
