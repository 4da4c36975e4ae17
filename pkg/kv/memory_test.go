package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T, opts ...MemoryOption) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMemoryStoreRoundTripsJSON(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Set(ctx, "a", item{Name: "x", Count: 2}, 0))
	require.NoError(t, s.Set(ctx, "raw", "plain", 0))

	var got item
	require.NoError(t, s.Get(ctx, "a", &got))
	assert.Equal(t, item{Name: "x", Count: 2}, got)

	var str string
	require.NoError(t, s.Get(ctx, "raw", &str))
	assert.Equal(t, "plain", str)

	assert.ErrorIs(t, s.Get(ctx, "missing", &got), ErrMiss)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", 1, time.Minute))
	var v int
	require.NoError(t, s.Get(ctx, "k", &v))

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, s.Get(ctx, "k", &v), ErrMiss)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreKeysAndMGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, k := range []string{"preset:b", "preset:a", "scan:1"} {
		require.NoError(t, s.Set(ctx, k, item{Name: k}, 0))
	}

	keys, err := s.Keys(ctx, "preset:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"preset:a", "preset:b"}, keys)

	typed, err := MGetTyped[item](ctx, s, append(keys, "preset:zzz")...)
	require.NoError(t, err)
	assert.Len(t, typed, 2)
	assert.Equal(t, "preset:a", typed["preset:a"].Name)
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, WithMemoryMaxSize(2))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { now = now.Add(time.Second); return now }

	require.NoError(t, s.Set(ctx, "a", 1, 0))
	require.NoError(t, s.Set(ctx, "b", 2, 0))
	var v int
	require.NoError(t, s.Get(ctx, "a", &v))
	require.NoError(t, s.Set(ctx, "c", 3, 0))

	assert.NoError(t, s.Get(ctx, "a", &v))
	assert.ErrorIs(t, s.Get(ctx, "b", &v), ErrMiss)
	assert.NoError(t, s.Get(ctx, "c", &v))
}

func TestMemoryStoreLock(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	ok, err := s.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Unlock(ctx, "lock"))
	ok, _ = s.TryLock(ctx, "lock", time.Minute)
	assert.True(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "preset:daily", Key("preset", "daily"))
	assert.Equal(t, "one", Key("one"))
}
