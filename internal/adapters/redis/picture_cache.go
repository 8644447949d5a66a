package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PictureCache stores profile-picture bytes in Redis with a TTL.
type PictureCache struct {
	client redis.UniversalClient
}

// NewPictureCache creates a new Redis-backed picture cache.
func NewPictureCache(client redis.UniversalClient) *PictureCache {
	return &PictureCache{client: client}
}

// Get retrieves cached bytes by key. A missing key is (nil, nil), not an error.
func (c *PictureCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	result, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	return []byte(result), nil
}

// Set stores bytes under key with the given TTL.
func (c *PictureCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes key and reports whether it existed.
func (c *PictureCache) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	result, err := c.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}

	return result > 0, nil
}
