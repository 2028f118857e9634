package logger

import (
	"fmt"

	"github.com/jengaest/estimate-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates the service logger. JSON output is used in production or
// when logging.format is "json"; otherwise a coloured console encoder.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// WithRequest adds request context to logger
func WithRequest(log *zap.Logger, method, path, requestID string) *zap.Logger {
	return log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("requestId", requestID),
	)
}

// WithUser adds user context to logger
func WithUser(log *zap.Logger, userID, displayName string) *zap.Logger {
	return log.With(
		zap.String("userId", userID),
		zap.String("userName", displayName),
	)
}
