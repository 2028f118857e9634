package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource defines where secrets are loaded from
type SecretSource string

const (
	// SourceEnvironment reads secrets from environment variables
	SourceEnvironment SecretSource = "environment"
	// SourceVault reads secrets from Azure Key Vault
	SourceVault SecretSource = "vault"
	// SourceAuto picks environment for local development and vault everywhere else
	SourceAuto SecretSource = "auto"
)

// ErrSecretNotFound is returned when a secret has no value in the configured source
var ErrSecretNotFound = errors.New("secret not found")

// Reader is anything that can fetch a named secret
type Reader interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Ref names a secret both in Key Vault and as an environment variable override
type Ref struct {
	VaultName string
	EnvName   string
}

// Provider resolves secrets from the configured source
type Provider struct {
	source SecretSource
	vault  Reader
	logger *zap.Logger
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ResolveSource turns "auto" into a concrete source for the given environment
func ResolveSource(source SecretSource, environment string) SecretSource {
	if source != SourceAuto {
		return source
	}
	switch environment {
	case "development", "local", "test", "":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

// NewProvider creates a secrets provider, connecting to Key Vault when required
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment)

	p := &Provider{source: source, logger: logger}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		client, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vault = client
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// NewProviderWithReader builds a vault-backed provider around an existing reader
func NewProviderWithReader(reader Reader, logger *zap.Logger) *Provider {
	return &Provider{source: SourceVault, vault: reader, logger: logger}
}

// Get resolves a secret. An explicitly set environment variable always wins.
func (p *Provider) Get(ctx context.Context, ref Ref) (string, error) {
	if ref.EnvName != "" {
		if v := os.Getenv(ref.EnvName); v != "" {
			return v, nil
		}
	}

	switch p.source {
	case SourceEnvironment:
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, ref.EnvName)
	case SourceVault:
		if p.vault == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vault.GetSecret(ctx, ref.VaultName)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetOrDefault resolves a secret, returning fallback when it cannot be found
func (p *Provider) GetOrDefault(ctx context.Context, ref Ref, fallback string) string {
	value, err := p.Get(ctx, ref)
	if err != nil || value == "" {
		p.logger.Debug("Using fallback value for secret",
			zap.String("secretName", ref.VaultName),
			zap.String("envName", ref.EnvName),
		)
		return fallback
	}
	return value
}

// Source returns the resolved secret source
func (p *Provider) Source() SecretSource {
	return p.source
}

// IsVaultEnabled returns true if secrets are loaded from vault
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}
