package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger. DEBUG=true lowers the level.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	l := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(l)
	return l
}
