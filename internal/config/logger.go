package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger for env. Production emits JSON at
// info level; anywhere else gets human-readable text with debug output,
// which is where the per-frame session decisions land.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: env != "production",
	}

	var handler slog.Handler
	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(slog.String("service", "presente"))
}
