// Package config loads tabula.yaml. Precedence: CLI flags > env vars >
// config file > defaults.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/dialect"
	"github.com/hlop3z/tabula/internal/history"
)

// FileName is the config file looked up in the working directory.
const FileName = "tabula.yaml"

// Environment variables overriding the config file.
const (
	EnvProject  = "TABULA_PROJECT"
	EnvOutput   = "TABULA_OUTPUT"
	EnvLogLevel = "TABULA_LOG_LEVEL"
)

// Config represents the tabula.yaml configuration file.
type Config struct {
	// Project is the project JSON file commands operate on.
	Project string `yaml:"project"`
	// Output is where compile writes SQL. Empty means stdout.
	Output string `yaml:"output,omitempty"`
	// Dialect is the SQL dialect to compile to.
	Dialect string `yaml:"dialect"`
	// HistoryLimit is the number of undo steps the editor keeps.
	HistoryLimit int `yaml:"history_limit"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Project:      "schema.json",
		Dialect:      "postgres",
		HistoryLimit: history.DefaultLimit,
		LogLevel:     "warn",
	}
}

// Overrides holds values set by CLI flags. Empty fields are unset.
type Overrides struct {
	Project  string
	Output   string
	LogLevel string
}

// Load reads the config file at path (a missing file is not an error),
// applies env vars read through getenv and then flag overrides, and
// validates the result. ${VAR} references in paths are expanded.
func Load(path string, getenv func(string) string, flags Overrides) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, alerr.Wrap(alerr.ErrInvalidConfig, err, "failed to parse config file").WithFile(path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, alerr.Wrap(alerr.ErrIO, err, "failed to read config file").WithFile(path)
	}

	cfg.Project = os.Expand(cfg.Project, getenv)
	cfg.Output = os.Expand(cfg.Output, getenv)

	if v := getenv(EnvProject); v != "" {
		cfg.Project = v
	}
	if v := getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if flags.Project != "" {
		cfg.Project = flags.Project
	}
	if flags.Output != "" {
		cfg.Output = flags.Output
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode strictly unmarshals YAML onto cfg; unknown keys are errors.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Project == "" {
		return alerr.New(alerr.ErrInvalidConfig, "project path is empty").
			WithHelp("set 'project' in " + FileName + " or pass --project")
	}
	if dialect.Get(c.Dialect) == nil {
		return alerr.Newf(alerr.ErrUnsupportedDialect, "unsupported dialect %q", c.Dialect).
			WithHelp("supported dialects: " + strings.Join(dialect.Names(), ", "))
	}
	if c.HistoryLimit < 0 {
		return alerr.Newf(alerr.ErrInvalidConfig, "history_limit must not be negative, got %d", c.HistoryLimit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, alerr.Wrapf(alerr.ErrInvalidConfig, err, "invalid log level %q", c.LogLevel).
			WithHelp("use one of: debug, info, warn, error")
	}
	return lvl, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to encode config")
	}
	return data, nil
}

// Write saves the config to path.
func (c *Config) Write(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to write config file").WithFile(path)
	}
	return nil
}
