// Package logging builds the process-wide slog handler and carries request loggers on contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler encoding.
type Format string

const (
	// FormatText is the human readable key=value encoding.
	FormatText Format = "text"
	// FormatJSON is one JSON object per line.
	FormatJSON Format = "json"
)

// Options configures the root logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format Format
	Output io.Writer
	// AddSource records file:line of the call site.
	AddSource bool
}

// ParseLevel converts a level name to slog.Level. Unknown names are an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewHandler returns a handler for opts.
func NewHandler(opts Options) (slog.Handler, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	switch opts.Format {
	case FormatJSON:
		return slog.NewJSONHandler(out, hopts), nil
	case FormatText, "":
		return slog.NewTextHandler(out, hopts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

// Setup builds the handler for opts and installs it as the slog default.
func Setup(opts Options) (*slog.Logger, error) {
	h, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, nil
}

// Subsystem returns the default logger tagged with a component name.
func Subsystem(name string) *slog.Logger {
	return slog.Default().With("component", name)
}

type loggerKey struct{}

// FromContext extracts the logger from context, falling back to slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// ToContext adds the logger to context.
func ToContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}
