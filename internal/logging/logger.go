package logging

import (
	"io"
	"log/slog"
)

// New creates a text logger writing to w with the [ContextHandler] wrapped around it.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})))
}
