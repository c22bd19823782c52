package main

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx/slack-summarizer/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Slack: config.SlackConfig{
			SigningSecret: "signing-secret",
			BotToken:      "xoxb-test",
			ResponseType:  "ephemeral",
		},
		Completion: config.CompletionConfig{
			APIKey:    "sk-test",
			BaseURL:   "http://127.0.0.1:1/v1",
			Model:     "test-model",
			MaxTokens: 100,
		},
		History: config.HistoryConfig{Lookback: 1, PageLimit: 10, Timezone: "UTC"},
	}
}

func TestRun_ReturnsDatabaseErrors(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := testConfig()
	cfg.Database = config.DatabaseConfig{
		Enabled:  true,
		Host:     "127.0.0.1",
		Port:     1,
		User:     "summarizer",
		Database: "summarizer",
		SSLMode:  "disable",
	}

	err := run(cfg, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestRun_ReturnsProviderErrors(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := testConfig()
	cfg.Completion.Model = ""

	err := run(cfg, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider configuration")
}
