// internal/config/secrets.go
//
// Vault reference resolution.
//
// Context
// -------
// Any secret-bearing value may be written as
//
//	vault:<mount>/<path>#<key>      e.g. vault:secret/ai-service#openai
//
// instead of the plain secret.  ResolveSecrets swaps each reference for the
// value returned by a SecretResolver (internal/vault.Client in production)
// and returns a new Config, so the loaded value is never mutated.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"context"
	"fmt"
	"strings"
)

// VaultPrefix marks a value that must be resolved through Vault.
const VaultPrefix = "vault:"

// SecretResolver turns "<mount>/<path>#<key>" into the secret value.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// secretFields lists the leaves that may carry a vault reference.
func (c *Config) secretFields() map[string]*string {
	return map[string]*string{
		"OPENAI_API_KEY":   &c.OpenAI.APIKey,
		"PINECONE_API_KEY": &c.Pinecone.APIKey,
		"DATABASE_URL":     &c.Database.URL,
		"REDIS_URL":        &c.Redis.URL,
	}
}

// HasSecretRefs reports whether any secret field holds a vault reference.
func (c *Config) HasSecretRefs() bool {
	for _, p := range c.secretFields() {
		if strings.HasPrefix(*p, VaultPrefix) {
			return true
		}
	}
	return false
}

// ResolveSecrets returns a copy of c with every vault reference resolved.
func (c *Config) ResolveSecrets(ctx context.Context, r SecretResolver) (*Config, error) {
	out := *c
	for name, p := range out.secretFields() {
		ref, ok := strings.CutPrefix(*p, VaultPrefix)
		if !ok {
			continue
		}
		val, err := r.Resolve(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("config: resolve %s: %w", name, err)
		}
		*p = val
	}
	return &out, nil
}
