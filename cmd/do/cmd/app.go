package cmd

import (
	"fmt"

	"github.com/mindsync/wellness/internal/app"
	"github.com/mindsync/wellness/internal/config"
	"github.com/mindsync/wellness/internal/logger"
)

// openApp wires the same stores and services the server uses.
func openApp() (*app.App, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return a, nil
}
