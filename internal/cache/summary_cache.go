// internal/cache/summary_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/stockpilot/internal/config"
	"github.com/andresuchdata/stockpilot/internal/domain"
	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "inventory:summary"

// SummaryCache shields the dashboard summary from recomputation. A miss
// returns (nil, false, nil). Summaries are cached per item count, so
// invalidation drops every count at once; the action log mutations that
// shift the active counts cannot know which counts were cached.
type SummaryCache interface {
	GetSummary(ctx context.Context, itemCount int) (*domain.InventorySummary, bool, error)
	SetSummary(ctx context.Context, itemCount int, summary domain.InventorySummary) error
	InvalidateSummaries(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, itemCount int) (*domain.InventorySummary, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey(itemCount)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.InventorySummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode inventory summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, itemCount int, summary domain.InventorySummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode inventory summary cache: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(itemCount), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) InvalidateSummaries(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, summaryKeyPrefix+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (n *noopSummaryCache) GetSummary(ctx context.Context, itemCount int) (*domain.InventorySummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetSummary(ctx context.Context, itemCount int, summary domain.InventorySummary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateSummaries(ctx context.Context) error {
	return nil
}

func summaryKey(itemCount int) string {
	return fmt.Sprintf("%s:%d", summaryKeyPrefix, itemCount)
}
