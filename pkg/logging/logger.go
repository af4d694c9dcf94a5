// Package logging configures zerolog for the apikit packages. Library
// code logs through component-tagged children of the global logger, so
// one Setup call in the host application controls everything.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel names a minimum severity.
type LogLevel string

const (
	// LevelDebug enables page-fetch and cache tracing.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs normal operation events and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs degraded-but-working conditions and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs failures only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum severity that reaches the output. Unknown
	// values fall back to info.
	Level LogLevel

	// Pretty switches from JSON lines to human-readable console output.
	Pretty bool

	// Output receives the log stream. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns a default logger configuration: info-level JSON
// on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger and returns it. Every
// component logger derived afterwards inherits the level, format, and
// output chosen here.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// parseLevel maps a LogLevel onto zerolog's levels, defaulting to info.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger derives a child logger tagged with the component name, the
// same shape the apikit packages use internally.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Page fetch lifecycle (started, complete, offsets)
//   - Cache operations (hit/miss, entry age)
//   - Iterator completion
//
// Info: Normal operation events
//   - Cache invalidation
//   - Application startup/shutdown
//
// Warn: Warning conditions that don't prevent operation
//   - Cache errors (fallback to a direct fetch)
//   - Corrupted cache entries being dropped
//
// Error: Error conditions requiring attention
//   - Failed page fetches (terminate the iterator)
//   - Failed HTTP requests
//   - Undecodable API responses
//   - Configuration errors
//
// Context Fields:
//   - component: Emitting component (paginator, endpoint, pagecache)
//   - endpoint: API endpoint path
//   - status: HTTP status code
//   - offset: Item offset of the current page
//   - items: Number of items in a page
//   - keyspace: Page cache keyspace
//   - age: Age of a served cache entry
