package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tunegraph/tunegraph/internal/domain"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// buildKey normalizes the seed set so seed order does not fragment the
// cache.
func buildKey(seedIDs []string, limit int) string {
	sorted := make([]string, len(seedIDs))
	copy(sorted, seedIDs)
	sort.Strings(sorted)
	return fmt.Sprintf("rec:seeds:%s:limit:%d", strings.Join(sorted, ","), limit)
}

// Get recommendations from cache
func (c *Cache) Get(ctx context.Context, seedIDs []string, limit int) ([]domain.RankedTrack, bool, error) {
	key := buildKey(seedIDs, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var recs []domain.RankedTrack
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}
	return recs, true, nil
}

// Store recommendations in cache
func (c *Cache) Set(ctx context.Context, seedIDs []string, limit int, recs []domain.RankedTrack) error {
	key := buildKey(seedIDs, limit)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// Clear drops every cached recommendation: used when the catalog is
// re-imported.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "rec:seeds:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
