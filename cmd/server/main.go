package main

import (
	"log/slog"
	"os"

	"logigraph-console/internal/app"
	"logigraph-console/internal/logger"
)

func main() {
	// Until the config is loaded; app.New switches to LOG_LEVEL.
	logHandler := logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
