package main

import (
	"log/slog"
	"os"
)

// NewLogger returns the process-wide JSON logger. At debug level it also
// records source locations, which makes gesture and export traces easier to
// follow back to their call sites.
func NewLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if lvl, ok := level.(slog.Level); ok && lvl <= slog.LevelDebug {
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
