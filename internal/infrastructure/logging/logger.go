package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger when format is "json" and a text logger otherwise.
func New(format string) *slog.Logger {
	return NewWithWriter(format, os.Stdout)
}

func NewWithWriter(format string, w io.Writer) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{AddSource: true}))
}
