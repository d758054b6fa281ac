package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"rating-manager/core/config"
	"rating-manager/core/logger"
)

// setup loads the configuration and builds the logger, shared by every
// subcommand.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(log)
	return cfg, log, nil
}
