package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pharmacy-pos-backend/pkg/config"
)

func TestSetNXOnlyClaimsOnce(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	key := client.IdempotencyKey("sales", "abc")

	ok, err := client.SetNX(ctx, key, "pending", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, key, "other", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "pending", got)
	assert.Equal(t, time.Hour, mock.ttls[key])

	require.NoError(t, client.Set(ctx, key, "done", 2*time.Hour))
	got, err = client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "done", got)

	require.NoError(t, client.Del(ctx, key))
	_, err = client.Get(ctx, key)
	assert.True(t, errors.Is(err, ErrNil), "expected ErrNil, got %v", err)
}

func TestUninitializedClientFails(t *testing.T) {
	ctx := context.Background()
	client := &Client{}

	_, err := client.Get(ctx, "k")
	assert.Error(t, err)
	_, err = client.SetNX(ctx, "k", "v", 0)
	assert.Error(t, err)
	assert.Error(t, client.Set(ctx, "k", "v", 0))
	assert.Error(t, client.Del(ctx, "k"))
	assert.Error(t, client.Ping(ctx))
	assert.NoError(t, client.Close())
}

func TestIdempotencyKeySkipsEmptyParts(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "pos:idempotency:sales:abc", client.IdempotencyKey("sales", "abc"))
	assert.Equal(t, "pos:idempotency:abc", client.IdempotencyKey(" ", "abc"))
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{
		Address:  "localhost:6379",
		Password: "secret",
		DB:       2,
		PoolSize: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5, opts.PoolSize)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://cache.internal:6380/3", PoolSize: 7})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)

	_, err = optionsFromConfig(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
		delete(m.ttls, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
