package infra

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger builds the process logger. Level comes from config, with the
// debug flag taking precedence.
func NewLogger(level string, debug bool) *slog.Logger {
	slogLevel := slog.LevelInfo
	if debug || level == "debug" {
		slogLevel = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	}))
}
