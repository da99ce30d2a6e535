package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

var loggerContextKey contextKey

// With derives a context whose logger carries the extra fields. Middleware
// uses it to stamp the trace ID once instead of threading it by hand.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, loggerContextKey, From(ctx).With(fields...))
}

// From extracts the request-scoped logger, falling back to the shared one.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
