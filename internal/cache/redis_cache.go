package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

const (
	liveCampaignsGenKey = "storefront:campaigns:gen"
	liveCampaignsPrefix = "storefront:campaigns:live:"
)

// RedisCampaignCache shares the live campaign list between replicas.
// The list is stored under a key versioned by a generation counter;
// Invalidate bumps the counter so lists loaded before it are never read.
// Redis failures degrade to cache misses.
type RedisCampaignCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCampaignCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCampaignCache {
	return &RedisCampaignCache{client: client, ttl: ttl, log: log}
}

func liveCampaignsKey(gen uint64) string {
	return liveCampaignsPrefix + strconv.FormatUint(gen, 10)
}

func (c *RedisCampaignCache) generation(ctx context.Context) (uint64, error) {
	gen, err := c.client.Get(ctx, liveCampaignsGenKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCampaignCache) Get(ctx context.Context) ([]models.Campaign, uint64, bool) {
	if c.ttl <= 0 {
		return nil, 0, false
	}
	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("campaign cache read failed", zap.Error(err))
		return nil, gen, false
	}
	raw, err := c.client.Get(ctx, liveCampaignsKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("campaign cache read failed", zap.Error(err))
		}
		return nil, gen, false
	}
	var campaigns []models.Campaign
	if err := json.Unmarshal(raw, &campaigns); err != nil {
		c.log.Warn("campaign cache entry corrupt", zap.Error(err))
		return nil, gen, false
	}
	return campaigns, gen, true
}

// Set writes under gen's key. If Invalidate ran since gen was read, readers
// already look at a newer key and the write simply expires.
func (c *RedisCampaignCache) Set(ctx context.Context, gen uint64, campaigns []models.Campaign) {
	if c.ttl <= 0 {
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	raw, err := json.Marshal(campaigns)
	if err != nil {
		c.log.Warn("campaign cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, liveCampaignsKey(gen), raw, c.ttl).Err(); err != nil {
		c.log.Warn("campaign cache write failed", zap.Error(err))
	}
}

func (c *RedisCampaignCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, liveCampaignsGenKey).Err(); err != nil {
		c.log.Warn("campaign cache invalidate failed", zap.Error(err))
	}
}
