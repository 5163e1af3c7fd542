package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/moodtunes/internal/shared"
)

var version = "0.1.0"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	if err := shared.LoadEnv(config, ".env"); err != nil {
		logger.Warn("failed to apply environment overrides", "error", err)
	}
	if err := shared.SetLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("invalid log level in config", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrCancelled) {
			logger.Warn("cancelled", "reason", err)
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
