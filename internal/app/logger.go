package app

import (
	"log/slog"
	"os"
	"strings"

	"github.com/avestudio/studio/internal/configuration"
)

/*
SetupLogger installs a JSON logger at the configured level as the
default slog logger.
*/
func SetupLogger(config *configuration.Config, appName, version string) {
	level := slog.LevelInfo

	switch strings.ToLower(config.LogLevel) {
	case "debug":
		level = slog.LevelDebug

	case "warn":
		level = slog.LevelWarn

	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(h).With(
		slog.String("app", appName),
		slog.String("version", version),
	)

	slog.SetDefault(logger)
}
