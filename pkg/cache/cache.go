// Package cache is a small JSON cache over Redis with generation based
// invalidation: bumping a namespace's generation orphans every key written
// under the previous one, and the TTL reclaims them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache is what services depend on.
type Cache interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
	Generation(ctx context.Context, namespace string) (int64, error)
	Invalidate(ctx context.Context, namespace string) error
}

// Client is the subset of the go-redis API the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

func NewClient(cfg utils.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

type RedisCache struct {
	client Client
	ttl    time.Duration
}

func NewRedisCache(client Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Generation returns the current generation of namespace, 0 if never bumped.
func (c *RedisCache) Generation(ctx context.Context, namespace string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation %s: %w", namespace, err)
	}
	return gen, nil
}

func (c *RedisCache) Invalidate(ctx context.Context, namespace string) error {
	if err := c.client.Incr(ctx, generationKey(namespace)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", namespace, err)
	}
	return nil
}

func generationKey(namespace string) string {
	return fmt.Sprintf("%s:gen", namespace)
}

// Key builds a cache key scoped to a namespace generation.
func Key(namespace string, generation int64, parts ...string) string {
	key := fmt.Sprintf("%s:%d", namespace, generation)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Noop is used when Redis is not configured; every read misses.
type Noop struct{}

func (Noop) Get(context.Context, string, any) error            { return ErrCacheMiss }
func (Noop) Set(context.Context, string, any) error            { return nil }
func (Noop) Generation(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Invalidate(context.Context, string) error          { return nil }
