// Package logging wraps log/slog with the field names used across this
// module.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with cone-search specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w (stderr when nil) in the given format
// ("text" or "json") at the given level.
func New(w io.Writer, format string, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// OrNoop returns l, or a discarding logger when l is nil.
func OrNoop(l *Logger) *Logger {
	if l == nil {
		return Noop()
	}
	return l
}

// ParseLevel maps debug/info/warn/error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: invalid level %q", s)
	}
	return level, nil
}

// With returns a Logger with the given attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithCenter tags the logger with a query center.
func (l *Logger) WithCenter(ra, dec float64) *Logger {
	return l.With("ra", ra, "dec", dec)
}

// LogAttempt logs one adaptive-sampling lookup.
func (l *Logger) LogAttempt(ctx context.Context, radius float64, stars int, state string) {
	l.DebugContext(ctx, "lookup attempt",
		"radius", radius,
		"stars", stars,
		"state", state,
	)
}

// LogSample logs the outcome of a sampling run.
func (l *Logger) LogSample(ctx context.Context, radius float64, stars, iterations int, state string, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sample failed",
			"radius", radius,
			"iterations", iterations,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "sample completed",
		"radius", radius,
		"stars", stars,
		"iterations", iterations,
		"state", state,
		"elapsed", elapsed,
	)
}
