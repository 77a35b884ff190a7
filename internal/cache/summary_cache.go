// Package cache holds the redis-backed summary cache. Building the
// dashboard summary reads the whole table, so the hot GET path keeps a
// short-lived copy that every write invalidates.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"faultwatch/internal/report"
)

const summaryKey = "faultwatch:summary"

// SummaryCache caches the computed dashboard summary.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache returns redis-backed cache.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary, or ok=false on miss.
func (c *SummaryCache) Get(ctx context.Context) (report.Summary, bool, error) {
	result, err := c.client.Get(ctx, summaryKey).Result()
	if errors.Is(err, redis.Nil) {
		return report.Summary{}, false, nil
	}
	if err != nil {
		return report.Summary{}, false, err
	}

	var summary report.Summary
	if err := json.Unmarshal([]byte(result), &summary); err != nil {
		return report.Summary{}, false, err
	}
	return summary, true, nil
}

// Set stores the summary for the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, summary report.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey, data, c.ttl).Err()
}

// Invalidate drops the cached summary after an ingest or reset.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, summaryKey).Err()
}
