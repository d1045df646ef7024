package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MissingOpenAIKey(t *testing.T) {
	cfg := &Config{Port: 5000}

	assert.Equal(t, []string{"OPENAI_API_KEY"}, cfg.Missing())

	err := cfg.Validate()
	require.Error(t, err)

	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, []string{"OPENAI_API_KEY"}, cerr.Missing)
	assert.Equal(t, "missing required configuration: OPENAI_API_KEY", err.Error())
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{Port: 5000, OpenAI: OpenAI{APIKey: "sk-test"}}

	assert.Empty(t, cfg.Missing())
	assert.NoError(t, cfg.Validate())
}

func TestValidate_OptionalFieldsNotRequired(t *testing.T) {
	cfg := &Config{OpenAI: OpenAI{APIKey: "sk-test"}}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := &Config{Port: 5000, Environment: "development"}
	before := *cfg

	_ = cfg.Validate()
	assert.Equal(t, before, *cfg)
}

func TestConfigurationError_JoinsAllNames(t *testing.T) {
	err := &ConfigurationError{Missing: []string{"OPENAI_API_KEY", "PINECONE_API_KEY"}}
	assert.Equal(t, "missing required configuration: OPENAI_API_KEY, PINECONE_API_KEY", err.Error())
}

func TestMissing_NilConfig(t *testing.T) {
	var cfg *Config
	assert.Nil(t, cfg.Missing())
}

/*──────────────────────────── secrets ─────────────────────────────────────*/

type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := m[ref]
	if !ok {
		return "", errors.New("no such secret")
	}
	return v, nil
}

func TestResolveSecrets(t *testing.T) {
	cfg := &Config{
		OpenAI:   OpenAI{APIKey: "vault:secret/ai#openai"},
		Pinecone: Pinecone{APIKey: "plain", IndexName: "vault:not-a-secret-field"},
		Database: Database{URL: "vault:secret/ai#db"},
	}
	require.True(t, cfg.HasSecretRefs())

	out, err := cfg.ResolveSecrets(context.Background(), mapResolver{
		"secret/ai#openai": "sk-resolved",
		"secret/ai#db":     "postgresql://u:p@db/x",
	})
	require.NoError(t, err)

	assert.Equal(t, "sk-resolved", out.OpenAI.APIKey)
	assert.Equal(t, "plain", out.Pinecone.APIKey)
	assert.Equal(t, "vault:not-a-secret-field", out.Pinecone.IndexName)
	assert.Equal(t, "postgresql://u:p@db/x", out.Database.URL)
	assert.False(t, out.HasSecretRefs())

	// Input untouched.
	assert.Equal(t, "vault:secret/ai#openai", cfg.OpenAI.APIKey)
}

func TestResolveSecrets_Error(t *testing.T) {
	cfg := &Config{Redis: Redis{URL: "vault:secret/ai#redis"}}

	_, err := cfg.ResolveSecrets(context.Background(), mapResolver{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestHasSecretRefs_None(t *testing.T) {
	cfg := &Config{OpenAI: OpenAI{APIKey: "sk-plain"}}
	assert.False(t, cfg.HasSecretRefs())
}
