package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/spotlite/internal/shared"
	"github.com/joho/godotenv"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		ConfigPath: defaultConfigPath,
		Logger:     logger,
	})

	if err := runner.command().Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
