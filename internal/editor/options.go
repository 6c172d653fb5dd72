package editor

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hlop3z/tabula/internal/history"
)

// Config holds all configuration options for an Editor.
type Config struct {
	// NewID generates table, column and relation ids.
	// Default: uuid.NewString
	NewID func() string

	// Logger receives one debug record per applied action and a warning
	// per rejected one.
	// Default: a logger that discards everything.
	Logger *slog.Logger

	// HistoryLimit is the number of undo steps kept.
	// Default: history.DefaultLimit
	HistoryLimit int
}

// Option is a functional option for configuring an Editor.
type Option func(*Config)

// WithIDGenerator replaces the uuid id source, typically with a counter in
// tests.
func WithIDGenerator(fn func() string) Option {
	return func(c *Config) {
		c.NewID = fn
	}
}

// WithLogger sets the logger for the editor.
// If not set, no logging is performed.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithHistoryLimit sets the undo capacity.
// Values below 1 mean history.DefaultLimit.
func WithHistoryLimit(n int) Option {
	return func(c *Config) {
		c.HistoryLimit = n
	}
}

func defaultConfig() Config {
	return Config{
		NewID:        uuid.NewString,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		HistoryLimit: history.DefaultLimit,
	}
}
