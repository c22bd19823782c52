package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx/slack-summarizer/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		level     logrus.Level
		json      bool
		expectErr bool
	}{
		{name: "defaults", cfg: config.LogConfig{}, level: logrus.InfoLevel},
		{name: "debug json", cfg: config.LogConfig{Level: "debug", Format: "json"}, level: logrus.DebugLevel, json: true},
		{name: "bad level", cfg: config.LogConfig{Level: "loud"}, expectErr: true},
		{name: "bad format", cfg: config.LogConfig{Format: "xml"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.level, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.json, isJSON)
		})
	}
}
