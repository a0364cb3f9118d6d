package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist holds revoked tokens until they would have expired anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blacklist:" + hex.EncodeToString(sum[:])
}

type RedisTokenBlacklist struct {
	Client *redis.Client
}

// NewRedisTokenBlacklist creates a new Redis-backed token blacklist
func NewRedisTokenBlacklist(ctx context.Context, redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

func (tb *RedisTokenBlacklist) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := tb.Client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %w", err)
	}
	return nil
}

func (tb *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := tb.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("checking token blacklist: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis connection
func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}

// MemoryTokenBlacklist is the single-process fallback used when no Redis is configured.
type MemoryTokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	Now     func() time.Time
}

func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{
		entries: make(map[string]time.Time),
		Now:     time.Now,
	}
}

func (tb *MemoryTokenBlacklist) Revoke(_ context.Context, token string, until time.Time) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.Now()
	for key, exp := range tb.entries {
		if !exp.After(now) {
			delete(tb.entries, key)
		}
	}
	if until.After(now) {
		tb.entries[blacklistKey(token)] = until
	}
	return nil
}

func (tb *MemoryTokenBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	exp, ok := tb.entries[blacklistKey(token)]
	return ok && exp.After(tb.Now()), nil
}
