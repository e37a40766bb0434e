// Package logger holds the process wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	base *zerolog.Logger
)

// Init configures the global logger.
//
// Level is one of debug|info|warn|error (default: warn). Pretty switches from JSON
// lines to a human readable console output. Every entry carries a "run" field
// identifying this invocation.
func Init(w io.Writer, level string, pretty bool) {
	l := newLogger(w, level, pretty)
	mu.Lock()
	defer mu.Unlock()
	base = &l
}

// L returns the global logger. It defaults to warnings on stderr when Init was not called.
func L() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		l := newLogger(os.Stderr, "warn", false)
		base = &l
	}
	return base
}

func newLogger(w io.Writer, level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).
		With().Timestamp().Str("run", uuid.NewString()).
		Logger().Level(ParseLevel(level))
}

// ParseLevel converts a level name to a zerolog level.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
