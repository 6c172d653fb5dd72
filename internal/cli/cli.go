// Package cli provides Cargo/rustc-style terminal output for tabula.
// It handles colored output, error formatting and tabular listings.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode determines how output is formatted.
type OutputMode int

const (
	// ModeTTY enables colored output for interactive terminals.
	ModeTTY OutputMode = iota
	// ModePlain outputs plain text without colors (for pipes/CI).
	ModePlain
)

// Config holds CLI output configuration.
type Config struct {
	Mode   OutputMode
	Writer io.Writer
}

// DefaultConfig returns the configuration detected from stdout and the
// environment.
func DefaultConfig() *Config {
	return Detect(os.Stdout, os.Getenv)
}

// Detect picks the output mode for f.
// Rules:
//   - f is a terminal and NO_COLOR is unset -> ModeTTY
//   - otherwise, or TERM=dumb -> ModePlain
func Detect(f *os.File, getenv func(string) string) *Config {
	mode := ModePlain
	if f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		mode = ModeTTY
	}

	// https://no-color.org/
	if getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		mode = ModePlain
	}

	var w io.Writer = os.Stdout
	if f != nil {
		w = f
	}
	return &Config{Mode: mode, Writer: w}
}

// IsTTY returns true if running in interactive terminal mode.
func (c *Config) IsTTY() bool {
	return c.Mode == ModeTTY
}

// IsPlain returns true if running in plain text mode.
func (c *Config) IsPlain() bool {
	return c.Mode == ModePlain
}

// Global default config, initialized lazily.
var defaultCfg *Config

// Default returns the global default configuration.
func Default() *Config {
	if defaultCfg == nil {
		defaultCfg = DefaultConfig()
	}
	return defaultCfg
}

// SetDefault sets the global default configuration.
func SetDefault(cfg *Config) {
	defaultCfg = cfg
}

// EnableColors returns true if colors should be used.
func EnableColors() bool {
	return Default().IsTTY()
}
