package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the small key/value surface the membership features need.
type Cache interface {
	// Acquire sets key only if it is absent, expiring it after ttl.
	// It reports whether this caller now holds the key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release deletes key.
	Release(ctx context.Context, key string) error
	// GetJSON decodes the value stored at key into dst. It reports false on a miss.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	// SetJSON stores v encoded as JSON, expiring after ttl (0 keeps it forever).
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// Redis is a Redis-backed Cache.
type Redis struct {
	client *redis.Client
	prefix string
}

// Ensure Redis implements the interface
var _ Cache = (*Redis)(nil)

// New connects to Redis and verifies the connection.
func New(cfg Config) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client (for testing).
func NewWithClient(client *redis.Client, cfg Config) *Redis {
	return &Redis{client: client, prefix: cfg.KeyPrefix}
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire %s: %w", key, err)
	}
	return ok, nil
}

func (r *Redis) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.client.Set(ctx, r.prefix+key, data, ttl).Err()
}

// Noop is used when no Redis is configured: every Acquire succeeds and every
// read misses.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Acquire(context.Context, string, time.Duration) (bool, error) { return true, nil }
func (Noop) Release(context.Context, string) error                        { return nil }
func (Noop) GetJSON(context.Context, string, any) (bool, error)           { return false, nil }
func (Noop) SetJSON(context.Context, string, any, time.Duration) error    { return nil }
