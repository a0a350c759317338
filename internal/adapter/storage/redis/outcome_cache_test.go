package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*OutcomeCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewOutcomeCache(client), mr
}

func TestOutcomeCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	txID := uuid.New()
	entry := []byte(`{"outcome_kind":"COMMITTED"}`)

	require.NoError(t, cache.Set(ctx, txID, entry, time.Hour))

	got, err := cache.Get(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestOutcomeCache_Get_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOutcomeCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	txID := uuid.New()

	require.NoError(t, cache.Set(ctx, txID, []byte("x"), time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, txID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOutcomeCache_KeyPrefix(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	txID := uuid.New()

	require.NoError(t, cache.Set(ctx, txID, []byte("x"), time.Hour))
	assert.True(t, mr.Exists("outcome:"+txID.String()))
}

func TestHealthCheck_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	hc := NewHealthCheck(client)
	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "redis", hc.Name())

	mr.Close()
	assert.Error(t, hc.Ping(context.Background()))
}
