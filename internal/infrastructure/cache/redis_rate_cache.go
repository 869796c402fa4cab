package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apppricing "github.com/driftwear/storefront/internal/application/pricing"
)

const defaultRateCacheKey = "pricing:rates:latest"

// RedisRateCache stores the rate table as a JSON blob with a server-side
// TTL, shared by every storefront instance.
type RedisRateCache struct {
	client *redis.Client
	key    string
}

var _ apppricing.Cache = (*RedisRateCache)(nil)

// NewRedisRateCache creates a cache on an existing Redis client. An empty
// key uses the default.
func NewRedisRateCache(client *redis.Client, key string) *RedisRateCache {
	if key == "" {
		key = defaultRateCacheKey
	}
	return &RedisRateCache{client: client, key: key}
}

func (c *RedisRateCache) Get(ctx context.Context) (*apppricing.Rates, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("rate cache get: %w", err)
	}

	var rates apppricing.Rates
	if err := json.Unmarshal(data, &rates); err != nil {
		// A corrupt blob is a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &rates, true, nil
}

func (c *RedisRateCache) Set(ctx context.Context, rates *apppricing.Rates, ttl time.Duration) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("rate cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("rate cache set: %w", err)
	}
	return nil
}
