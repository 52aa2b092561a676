package testhelpers

import (
	"io"
	"log/slog"

	"github.com/myrjola/fitnesspro/internal/logging"
)

// NewLogger creates a debug level logger writing to logSink such as the one returned by [NewWriter].
func NewLogger(logSink io.Writer) *slog.Logger {
	return logging.New(logSink, slog.LevelDebug)
}
