package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a slog logger writing to w. JSON output is used when results
// share a stream with other JSON (NDJSON records on stdout); text otherwise.
func New(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("component", "intake")
}

// Init creates and sets the package-level default slog logger on stderr.
// When outputIsStdout is true, uses JSONHandler (avoids mixing with NDJSON output).
// Otherwise uses TextHandler for human readability.
func Init(outputIsStdout bool, level slog.Level) *slog.Logger {
	logger := New(os.Stderr, outputIsStdout, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
