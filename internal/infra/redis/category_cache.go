package redis

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"quizzler/internal/app"
	"quizzler/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CategoryCache caches the category list in Redis and falls back to the
// provider on a miss. Categories are stored as a hash: HSET {prefix}categories {id} {name}
type CategoryCache struct {
	client   *redis.Client
	provider app.CategoryProvider
	ttl      time.Duration
	prefix   string
	sf       singleflight.Group
	rnd      *rand.Rand
}

func NewCategoryCache(client *redis.Client, provider app.CategoryProvider, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		client:   client,
		provider: provider,
		ttl:      ttl,
		prefix:   "quizzler:",
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CategoryCache) Categories(ctx context.Context) ([]domain.Category, error) {
	key := c.key()

	cached, err := c.client.HGetAll(ctx, key).Result()
	if err == nil && len(cached) > 0 {
		return fromHash(cached), nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := c.client.HGetAll(ctx, key).Result()
		if err == nil && len(cached) > 0 {
			return fromHash(cached), nil
		}

		categories, err := c.provider.Categories(ctx)
		if err != nil {
			return nil, err
		}
		if len(categories) == 0 {
			return categories, nil
		}

		pipe := c.client.TxPipeline()
		pipe.Del(ctx, key)
		for _, category := range categories {
			pipe.HSet(ctx, key, category.ID, category.Name)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		// best-effort: a failed write only costs a provider call next time
		_, _ = pipe.Exec(ctx)

		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (c *CategoryCache) key() string {
	return c.prefix + "categories"
}

func fromHash(cached map[string]string) []domain.Category {
	categories := make([]domain.Category, 0, len(cached))
	for id, name := range cached {
		categories = append(categories, domain.Category{ID: id, Name: name})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories
}

func (c *CategoryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
