package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	bl := NewMemoryTokenBlacklist()
	bl.Now = fixedClock(&now)

	require.NoError(t, bl.Revoke(ctx, "token-a", now.Add(time.Hour)))
	require.NoError(t, bl.Revoke(ctx, "token-old", now.Add(-time.Minute)))

	revoked, err := bl.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "token-old")
	require.NoError(t, err)
	assert.False(t, revoked, "already expired tokens are not stored")

	now = now.Add(time.Hour)
	revoked, err = bl.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked, "entries lapse with the token")

	// pruning happens on the next write
	require.NoError(t, bl.Revoke(ctx, "token-c", now.Add(time.Minute)))
	assert.Len(t, bl.entries, 1)
}

// setupTestRedis connects to REDIS_TEST_URL or skips the test.
func setupTestRedis(t *testing.T) *RedisTokenBlacklist {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	bl, err := NewRedisTokenBlacklist(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bl.Close() })
	return bl
}

func TestRedisTokenBlacklist(t *testing.T) {
	bl := setupTestRedis(t)
	ctx := context.Background()

	token := "redis-test-token-" + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, bl.Revoke(ctx, token, time.Now().Add(time.Minute)))

	revoked, err := bl.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, token+"-other")
	require.NoError(t, err)
	assert.False(t, revoked)

	ttl, err := bl.Client.TTL(ctx, blacklistKey(token)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestNewRedisTokenBlacklistBadURL(t *testing.T) {
	_, err := NewRedisTokenBlacklist(context.Background(), "://not-a-url")
	assert.Error(t, err)
}
