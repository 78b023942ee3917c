package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const placeKeyPrefix = "place:"

// RedisPlaceCache is a Redis-backed TTL cache for resolved place summaries.
// Entries expire after the configured TTL; a miss is not an error.
type RedisPlaceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlaceCache(client *redis.Client, ttl time.Duration) (*RedisPlaceCache, error) {
	if client == nil {
		return nil, errors.New("place cache: redis client is nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisPlaceCache{client: client, ttl: ttl}, nil
}

var _ ports.PlaceInfoCache = (*RedisPlaceCache)(nil)

func (c *RedisPlaceCache) Get(ctx context.Context, key string) (ports.PlaceSummary, bool, error) {
	if key == "" {
		return ports.PlaceSummary{}, false, errors.New("get place cache: key must not be empty")
	}

	raw, err := c.client.Get(ctx, placeKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.PlaceSummary{}, false, nil
	}
	if err != nil {
		return ports.PlaceSummary{}, false, fmt.Errorf("get place cache %q: %w", key, err)
	}

	var summary ports.PlaceSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		// A corrupt entry behaves like a miss so the caller re-resolves it.
		return ports.PlaceSummary{}, false, nil
	}

	return summary, true, nil
}

func (c *RedisPlaceCache) Put(ctx context.Context, key string, summary ports.PlaceSummary) error {
	if key == "" {
		return errors.New("insert place cache: key must not be empty")
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("insert place cache %q: marshal: %w", key, err)
	}

	if err := c.client.Set(ctx, placeKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert place cache %q: %w", key, err)
	}

	return nil
}
