package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// StatusCache implements ports.StatusCache using Redis.
type StatusCache struct {
	client *goredis.Client
	prefix string
}

// NewStatusCache creates a Redis-backed transaction status cache.
func NewStatusCache(client *goredis.Client) *StatusCache {
	return &StatusCache{
		client: client,
		prefix: "payment_status:",
	}
}

// Get retrieves a cached status snapshot by tracking id.
// Returns nil, nil if the key does not exist.
func (c *StatusCache) Get(ctx context.Context, orderTrackingID string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+orderTrackingID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis status get: %w", err)
	}
	return val, nil
}

// Set stores a status snapshot with TTL.
func (c *StatusCache) Set(ctx context.Context, orderTrackingID string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+orderTrackingID, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis status set: %w", err)
	}
	return nil
}
