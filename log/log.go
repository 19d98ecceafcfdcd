package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format represents the log output format.
type Format string

const (
	// FormatText outputs logs as human-readable key=value lines.
	FormatText Format = "text"
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLevel indicates an unrecognized log level string.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat indicates an unrecognized log format string.
	ErrUnknownFormat = errors.New("unknown log format")
)

// NewHandler creates a [slog.Handler] with the specified level and format.
func NewHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

// NewHandlerFromStrings creates a [slog.Handler] by parsing level and
// format strings.
func NewHandlerFromStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	lfmt, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, lfmt), nil
}

// ParseLevel parses a log level string and returns the corresponding
// [slog.Level].
func ParseLevel(level string) (slog.Level, error) {
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

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// ParseFormat parses a log format string and returns the corresponding
// [Format].
func ParseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(format)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// AllLevelStrings returns the accepted log level strings.
func AllLevelStrings() []string {
	return []string{"error", "warn", "info", "debug"}
}

// AllFormatStrings returns the accepted log format strings.
func AllFormatStrings() []string {
	return []string{string(FormatText), string(FormatJSON)}
}
