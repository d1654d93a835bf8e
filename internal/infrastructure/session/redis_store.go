package session

import (
	"context"
	"fmt"
	"time"

	"checkout-experience-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Lifetimes for session scopes and continuation markers.
const (
	SessionTTL = 2 * time.Hour
	MarkerTTL  = 10 * time.Minute
)

// RedisSessionBackend implements SessionBackend on a Redis hash per
// scope. Every write refreshes the scope TTL, so a session lives as
// long as the shopper keeps moving.
type RedisSessionBackend struct {
	client *redis.Client
}

// NewRedisSessionBackend creates a new Redis session backend.
func NewRedisSessionBackend(client *redis.Client) ports.SessionBackend {
	return &RedisSessionBackend{client: client}
}

func scopeKey(scope string) string {
	return "session:" + scope
}

// Put stores a value under the scope and refreshes the scope TTL
func (b *RedisSessionBackend) Put(ctx context.Context, scope, key, value string) error {
	pipe := b.client.TxPipeline()
	pipe.HSet(ctx, scopeKey(scope), key, value)
	pipe.Expire(ctx, scopeKey(scope), SessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write session key: %w", err)
	}
	return nil
}

// Get retrieves a value from the scope, "" when absent
func (b *RedisSessionBackend) Get(ctx context.Context, scope, key string) (string, error) {
	value, err := b.client.HGet(ctx, scopeKey(scope), key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session key: %w", err)
	}
	return value, nil
}

// Pull retrieves a value and removes it from the scope
func (b *RedisSessionBackend) Pull(ctx context.Context, scope, key string) (string, error) {
	pipe := b.client.TxPipeline()
	get := pipe.HGet(ctx, scopeKey(scope), key)
	pipe.HDel(ctx, scopeKey(scope), key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to pull session key: %w", err)
	}
	value, err := get.Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to pull session key: %w", err)
	}
	return value, nil
}

// Has reports whether the scope holds the key
func (b *RedisSessionBackend) Has(ctx context.Context, scope, key string) (bool, error) {
	exists, err := b.client.HExists(ctx, scopeKey(scope), key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session key: %w", err)
	}
	return exists, nil
}

// Forget removes a single key from the scope
func (b *RedisSessionBackend) Forget(ctx context.Context, scope, key string) error {
	if err := b.client.HDel(ctx, scopeKey(scope), key).Err(); err != nil {
		return fmt.Errorf("failed to forget session key: %w", err)
	}
	return nil
}

// Flush drops the whole scope
func (b *RedisSessionBackend) Flush(ctx context.Context, scope string) error {
	if err := b.client.Del(ctx, scopeKey(scope)).Err(); err != nil {
		return fmt.Errorf("failed to flush session scope: %w", err)
	}
	return nil
}

// RedisMarkerCache implements MarkerCache on plain Redis keys. Pull is
// a single GETDEL, so two concurrent resumes can never both see the
// pending marker.
type RedisMarkerCache struct {
	client *redis.Client
}

// NewRedisMarkerCache creates a new Redis marker cache.
func NewRedisMarkerCache(client *redis.Client) ports.MarkerCache {
	return &RedisMarkerCache{client: client}
}

// Pull consumes and returns a marker, "" when absent
func (c *RedisMarkerCache) Pull(ctx context.Context, key string) (string, error) {
	value, err := c.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to pull marker: %w", err)
	}
	return value, nil
}

// Put stores a marker with the standard marker lifetime
func (c *RedisMarkerCache) Put(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, MarkerTTL).Err(); err != nil {
		return fmt.Errorf("failed to store marker: %w", err)
	}
	return nil
}
