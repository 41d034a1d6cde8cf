// Package cliutil provides the small amount of shared plumbing behind
// cmd/jsontree's subcommands: parsing a --log-level string into a
// slog.Handler, the way MacroPower-x's log package turns CLI flag
// strings into handlers for cobra commands.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrUnknownLogLevel indicates an unrecognized log level string.
var ErrUnknownLogLevel = errors.New("unknown log level")

// GetLevel parses a log level string and returns the corresponding
// [slog.Level].
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// CreateHandler creates a [slog.Handler] at the given level, writing
// logfmt-style text to w.
func CreateHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
}
