package logger

import (
	"testing"

	"github.com/jengaest/estimate-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LoggingConfig
		app   config.AppConfig
		level zapcore.Level
	}{
		{"development debug", config.LoggingConfig{Level: "debug", Format: "console"}, config.AppConfig{Name: "estimate-api", Environment: "development"}, zapcore.DebugLevel},
		{"production json", config.LoggingConfig{Level: "warn", Format: "json"}, config.AppConfig{Name: "estimate-api", Environment: "production"}, zapcore.WarnLevel},
		{"invalid level falls back to info", config.LoggingConfig{Level: "loud"}, config.AppConfig{Environment: "development"}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewLogger(&tt.cfg, &tt.app)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.level-1))
			}
		})
	}
}
