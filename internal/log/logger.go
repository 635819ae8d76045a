package log

import (
	"io"
	"log/slog"
)

// NewLogger creates a structured logger writing to w.
// Without verbose only warnings and errors are emitted, so a normal run
// stays quiet; verbose lowers the level to debug, which includes
// per-directory traversal decisions and raw cargo output.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
