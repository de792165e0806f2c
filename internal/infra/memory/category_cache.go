package memory

import (
	"context"
	"math/rand"
	"slices"
	"sync"
	"time"

	"quizzler/internal/app"
	"quizzler/internal/domain"

	"golang.org/x/sync/singleflight"
)

// CategoryCache caches the category list with TTL to avoid hitting the provider
// on every session start. Failed loads are not cached.
type CategoryCache struct {
	provider app.CategoryProvider
	ttl      time.Duration
	clock    func() time.Time
	sf       singleflight.Group
	rnd      *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Category
	expiresAt time.Time
}

func NewCategoryCache(provider app.CategoryProvider, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		provider: provider,
		ttl:      ttl,
		clock:    time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CategoryCache) Categories(ctx context.Context) ([]domain.Category, error) {
	if categories, ok := c.lookup(c.clock()); ok {
		return categories, nil
	}

	result, err, _ := c.sf.Do("categories", func() (interface{}, error) {
		now := c.clock()
		if categories, ok := c.lookup(now); ok {
			return categories, nil
		}

		categories, err := c.provider.Categories(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cached = slices.Clone(categories)
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(result.([]domain.Category)), nil
}

func (c *CategoryCache) lookup(now time.Time) ([]domain.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cached != nil && c.expiresAt.After(now) {
		return slices.Clone(c.cached), true
	}
	return nil, false
}

func (c *CategoryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
