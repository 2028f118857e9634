package config

import (
	"context"
	"testing"
	"time"

	"github.com/jengaest/estimate-api/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 3, cfg.Estimation.RevisionRetries)
	assert.Equal(t, 7*24*time.Hour, cfg.Sharing.DefaultTTL())
	assert.Equal(t, int64(50*1024*1024), cfg.Storage.MaxUploadBytes())
	assert.ElementsMatch(t, []string{".pdf", ".dwg", ".dxf"}, cfg.Storage.AllowedExtensions)

	base, mult, cont := cfg.Estimation.Defaults()
	assert.Equal(t, "50000.00", base.StringFixed(2))
	assert.Equal(t, "1.00", mult.StringFixed(2))
	assert.Equal(t, "10.00", cont.StringFixed(2))
	assert.Equal(t, "85.00", cfg.Estimation.ConfidenceScore().StringFixed(2))
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("ESTIMATION_DEFAULTBASERATE", "42000.50")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	base, _, _ := cfg.Estimation.Defaults()
	assert.Equal(t, "42000.50", base.StringFixed(2))
	assert.Equal(t, "gemini-test", cfg.AI.Model)
}

func TestEstimationDefaults_InvalidFallsBack(t *testing.T) {
	e := EstimationConfig{DefaultBaseRate: "abc", DefaultMultiplier: "", DefaultContingency: "12.5"}
	base, mult, cont := e.Defaults()
	assert.Equal(t, "50000.00", base.StringFixed(2))
	assert.Equal(t, "1.00", mult.StringFixed(2))
	assert.Equal(t, "12.50", cont.StringFixed(2))
}

func TestApplySecrets(t *testing.T) {
	t.Setenv("AUTH_JWTSECRET", "env-jwt")

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{Source: secrets.SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	cfg := &Config{}
	cfg.Database.Password = "keep-me"
	ApplySecrets(context.Background(), cfg, provider)

	assert.Equal(t, "env-jwt", cfg.Auth.JWTSecret)
	assert.Equal(t, "keep-me", cfg.Database.Password)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "estimates", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=estimates sslmode=require", d.ConnectionString())
}
