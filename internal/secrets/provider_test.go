package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapReader map[string]string

func (m mapReader) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}
	return "", ErrSecretNotFound
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		source      SecretSource
		environment string
		want        SecretSource
	}{
		{SourceAuto, "development", SourceEnvironment},
		{SourceAuto, "", SourceEnvironment},
		{SourceAuto, "production", SourceVault},
		{SourceAuto, "staging", SourceVault},
		{SourceEnvironment, "production", SourceEnvironment},
		{SourceVault, "development", SourceVault},
	}
	for _, tt := range tests {
		t.Run(string(tt.source)+"/"+tt.environment, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSource(tt.source, tt.environment))
		})
	}
}

func TestProvider_EnvironmentSource(t *testing.T) {
	p, err := NewProvider(&ProviderConfig{Source: SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	t.Setenv("ESTIMATE_TEST_SECRET", "from-env")

	value, err := p.Get(context.Background(), Ref{VaultName: "estimate-test-secret", EnvName: "ESTIMATE_TEST_SECRET"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	_, err = p.Get(context.Background(), Ref{VaultName: "missing", EnvName: "ESTIMATE_TEST_MISSING"})
	assert.True(t, errors.Is(err, ErrSecretNotFound))

	assert.Equal(t, "fallback", p.GetOrDefault(context.Background(), Ref{EnvName: "ESTIMATE_TEST_MISSING"}, "fallback"))
}

func TestProvider_VaultReaderWithEnvOverride(t *testing.T) {
	p := NewProviderWithReader(mapReader{"jwt-secret": "vault-value"}, zap.NewNop())
	assert.True(t, p.IsVaultEnabled())

	value, err := p.Get(context.Background(), Ref{VaultName: "jwt-secret", EnvName: "ESTIMATE_TEST_JWT"})
	require.NoError(t, err)
	assert.Equal(t, "vault-value", value)

	t.Setenv("ESTIMATE_TEST_JWT", "override")
	value, err = p.Get(context.Background(), Ref{VaultName: "jwt-secret", EnvName: "ESTIMATE_TEST_JWT"})
	require.NoError(t, err)
	assert.Equal(t, "override", value)
}
