package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/config"
	"github.com/agentx/slack-summarizer/internal/logging"
)

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg, logger, nil
}

func requireDatabase(cfg *config.Config) error {
	if !cfg.Database.Enabled {
		return fmt.Errorf("database is disabled: set database.enabled or SUMMARIZER_DATABASE_ENABLED")
	}
	return nil
}
