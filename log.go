package vlist

import (
	"log/slog"
	"os"
)

// logLevel gates package debug output. Set VLIST_DEBUG=1 to see jump
// corrections, shift compensations and scroll-end transitions on stderr.
var logLevel = func() slog.Level {
	if os.Getenv("VLIST_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}()

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
