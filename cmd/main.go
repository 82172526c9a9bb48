package main

import (
	"context"
	"errors"
	"os"

	"github.com/cyrkaade/hackathon-lumina/internal/services"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	svc := services.NewAssessmentService(config.Backend.BaseURL, nil).
		WithDefaultLanguage(config.Backend.Language)
	if config.Backend.Retry.Enabled {
		svc = svc.WithQueryClient(services.NewRetryClient(config.Backend.Retry))
	}

	apiService := services.NewAPIService(config.Backend.BaseURL, nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: svc,
		API:     apiService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "lumina",
		Usage:    "Assess call center recordings and track worker performance",
		Version:  "0.5.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
