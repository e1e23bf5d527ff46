// Package logging configures slog for the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init sets the global slog default. Format must be "text" or "json";
// output defaults to os.Stderr when w is nil.
func Init(level slog.Level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// New returns a logger scoped to one component.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
