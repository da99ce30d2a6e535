package logger

import (
	"log/slog"
	"os"
	"strings"
)

const serviceName = "roster-guardian"

var defaultLogger *slog.Logger

// Init builds the process-wide logger. Production emits JSON for log
// shipping; everything else gets human-readable text. Every record carries
// the service name so aggregated streams stay attributable.
func Init(env string) {
	opts := &slog.HandlerOptions{Level: levelFor(env)}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler).With("service", serviceName)
	slog.SetDefault(defaultLogger)
}

// levelFor honors an explicit LOG_LEVEL override, otherwise info in
// production and debug everywhere else.
func levelFor(env string) slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if env == "production" {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// LoggerWrapper returns the shared logger, initializing a development one
// on first use so early callers never see nil.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
