package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

// CampaignCache keeps the live campaign list in memory for ttl.
// A non-positive ttl disables caching.
type CampaignCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	now       func() time.Time
	gen       uint64
	campaigns []models.Campaign
	expires   time.Time
}

func NewCampaignCache(ttl time.Duration) *CampaignCache {
	return &CampaignCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached list and the current generation. On a miss the
// caller passes that generation back to Set.
func (c *CampaignCache) Get(_ context.Context) ([]models.Campaign, uint64, bool) {
	if c.ttl <= 0 {
		return nil, 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.campaigns == nil || !c.now().Before(c.expires) {
		return nil, c.gen, false
	}
	return c.campaigns, c.gen, true
}

// Set stores campaigns unless the cache was invalidated after gen was read.
func (c *CampaignCache) Set(_ context.Context, gen uint64, campaigns []models.Campaign) {
	if c.ttl <= 0 {
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.campaigns = campaigns
	c.expires = c.now().Add(c.ttl)
}

func (c *CampaignCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.campaigns = nil
}
