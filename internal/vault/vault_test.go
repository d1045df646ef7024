// internal/vault/vault_test.go
//
// Unit-tests for reference parsing and KV-v2 reads.
//
// A httptest server stands in for Vault.  It serves one KV-v2 secret at
// secret/ai-service and counts reads so caching can be observed.

package vault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	path, key, err := parseRef("secret/ai-service#openai")
	require.NoError(t, err)
	assert.Equal(t, "secret/ai-service", path)
	assert.Equal(t, "openai", key)

	for _, bad := range []string{"", "secret/ai-service", "secret#k", "secret/#k", "/x#k", "secret/x#"} {
		_, _, err := parseRef(bad)
		assert.ErrorIs(t, err, ErrBadRef, bad)
	}
}

func TestSplitMount(t *testing.T) {
	m, rel := splitMount("secret/team/ai")
	assert.Equal(t, "secret", m)
	assert.Equal(t, "team/ai", rel)

	m, rel = splitMount("")
	assert.Empty(t, m)
	assert.Empty(t, rel)
}

const kvBody = `{
  "request_id": "3b1a",
  "lease_id": "",
  "renewable": false,
  "lease_duration": 0,
  "data": {
    "data": {"openai": "sk-from-vault", "count": 3}
  }
}`

func fakeVault(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()
	var reads int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/v1/secret/data/ai-service" {
			atomic.AddInt64(&reads, 1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(kvBody))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &reads
}

func newTestClient(t *testing.T, addr string) *Client {
	t.Helper()
	t.Setenv("VAULT_ADDR", addr)
	t.Setenv("VAULT_TOKEN", "test-token")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	// nil logger: the renewal goroutine may outlive the test.
	c, err := New(ctx, nil)
	require.NoError(t, err)
	return c
}

func TestResolve_ReadsAndCaches(t *testing.T) {
	srv, reads := fakeVault(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	v, err := c.Resolve(ctx, "secret/ai-service#openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-vault", v)

	v, err = c.Resolve(ctx, "secret/ai-service#openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-vault", v)

	assert.Equal(t, int64(1), atomic.LoadInt64(reads))
}

func TestGetKV_NoTTLSkipsCache(t *testing.T) {
	srv, reads := fakeVault(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.GetKV(ctx, "secret/ai-service", "openai", 0)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), atomic.LoadInt64(reads))
}

func TestGetKV_Errors(t *testing.T) {
	srv, _ := fakeVault(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := c.GetKV(ctx, "secret/ai-service", "missing", time.Minute)
	assert.ErrorContains(t, err, "not found")

	_, err = c.GetKV(ctx, "secret/ai-service", "count", time.Minute)
	assert.ErrorContains(t, err, "not a string")

	_, err = c.GetKV(ctx, "", "k", time.Minute)
	assert.Error(t, err)

	_, err = c.Resolve(ctx, "no-hash")
	assert.ErrorIs(t, err, ErrBadRef)
}
