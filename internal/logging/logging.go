// Package logging configures the process-wide slog logger.
// Diagnostics always go to stderr so they never mix with rendered log
// output on stdout.
package logging

import (
	"log/slog"
	"os"
)

// Init creates and sets the package-level default slog logger.
// verbose lowers the threshold to debug.
func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
