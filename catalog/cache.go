package catalog

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/pkg/logger"
)

const engagementKey = "recserve:engagement"

// EngagementCache keeps the merged engagement aggregates in Redis for a short
// TTL. The aggregate query scans two history tables, which is the expensive
// part of the snapshot; everything else stays per-request fresh.
//
// The cache is strictly best-effort: any Redis error reads as a miss and the
// caller falls through to SQL.
type EngagementCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEngagementCache connects to Redis. A failed ping returns an error so the
// caller can decide to run without the cache.
func NewEngagementCache(addr string, db int, ttl time.Duration) (*EngagementCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &EngagementCache{client: client, ttl: ttl}, nil
}

func (c *EngagementCache) Get(ctx context.Context) (map[int64]core.Engagement, bool) {
	data, err := c.client.Get(ctx, engagementKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Debug("engagement cache read failed", "error", err)
		}
		return nil, false
	}
	var out map[int64]core.Engagement
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Debug("engagement cache decode failed", "error", err)
		return nil, false
	}
	return out, true
}

func (c *EngagementCache) Set(ctx context.Context, aggregates map[int64]core.Engagement) {
	data, err := json.Marshal(aggregates)
	if err != nil {
		logger.Debug("engagement cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, engagementKey, data, c.ttl).Err(); err != nil {
		logger.Debug("engagement cache write failed", "error", err)
	}
}

func (c *EngagementCache) Close() error {
	return c.client.Close()
}
