package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores generated feeds keyed by anchor user. Feed generation is
// read-only, so a cached feed is only ever stale in score quality, never
// in correctness; Invalidate is called when a mentor initiates a match.
type Cache interface {
	Get(ctx context.Context, key string) ([]Item, bool)
	Set(ctx context.Context, key string, items []Item)
	Invalidate(ctx context.Context, key string)
}

func MentorFeedKey(mentorID string) string { return "feed:mentor:" + mentorID }
func MenteeFeedKey(menteeID string) string { return "feed:mentee:" + menteeID }

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) Cache {
	return &redisCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]Item, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("feed cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("feed cache payload corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return items, true
}

func (c *redisCache) Set(ctx context.Context, key string, items []Item) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("feed cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("feed cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
