package clickhouse

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSNNative(t *testing.T) {
	cfg := defaultClientConfig()
	cfg.Host = "ch.local"
	cfg.Database = "finscreen"
	cfg.Password = "p@ss"
	cfg.MaxExecTime = 90 * time.Second
	cfg.AsyncInsert = true
	cfg.WaitForAsync = true

	u, err := url.Parse(buildDSN(*cfg))
	require.NoError(t, err)

	assert.Equal(t, "clickhouse", u.Scheme)
	assert.Equal(t, "ch.local:9000", u.Host)
	assert.Equal(t, "/finscreen", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "90", u.Query().Get("max_execution_time"))
	assert.Equal(t, "1", u.Query().Get("async_insert"))
	assert.Equal(t, "1", u.Query().Get("wait_for_async_insert"))
	assert.Equal(t, "5s", u.Query().Get("dial_timeout"))
	assert.Empty(t, u.Query().Get("write_timeout"))
}

func TestBuildDSNHTTPDefaultPort(t *testing.T) {
	cfg := defaultClientConfig()
	cfg.Host = "ch.local"
	cfg.UseHTTP = true

	u, err := url.Parse(buildDSN(*cfg))
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "ch.local:8123", u.Host)
	assert.Empty(t, u.Query().Get("async_insert"))
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(context.Background())
	assert.Error(t, err)
}
