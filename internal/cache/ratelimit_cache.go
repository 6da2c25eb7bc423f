package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitCache implements a fixed-window request counter in Redis
type RateLimitCache interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type rateLimitCache struct {
	client *redis.Client
}

func NewRateLimitCache(client *redis.Client) RateLimitCache {
	return &rateLimitCache{
		client: client,
	}
}

func (c *rateLimitCache) key(key string) string {
	return fmt.Sprintf("ratelimit:%s", key)
}

func (c *rateLimitCache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	count, err := c.client.Incr(ctx, c.key(key)).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, c.key(key), window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
