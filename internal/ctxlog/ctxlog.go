// Package ctxlog carries the engine's slog.Logger through context.Context so
// that registration, graph building and evaluation all log to the logger the
// application configured, never to a process-wide default.
package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"math"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))

// FromContext extracts the slog.Logger from a context. A context without a
// logger gets one that drops everything, never slog's process-wide default,
// so the engine packages can be driven with a bare context.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return discard
}

// With returns a context whose logger has the given attributes attached.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// Discard returns a context carrying a logger that drops everything.
// Useful in tests that don't inspect log output.
func Discard() context.Context {
	return WithLogger(context.Background(), discard)
}
