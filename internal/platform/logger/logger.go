package logger

import (
	"io"
	"log/slog"
)

// New returns a structured JSON logger using slog, writing to w at level and above.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}
