package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

const categoriesKey = "categories"

// CategoryCache memoizes the full category list under a single key; every
// mutation drops it.
type CategoryCache struct {
	next   repository.CategoryRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCategoryCache wraps the repository with a redis-backed cache.
func NewCategoryCache(next repository.CategoryRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CategoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CategoryCache{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CategoryCache) List(ctx context.Context) ([]model.Category, error) {
	if raw, err := c.client.Get(ctx, categoriesKey).Result(); err == nil {
		var categories []model.Category
		if err := json.Unmarshal([]byte(raw), &categories); err == nil {
			return categories, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("category cache read failed", slog.String("error", err.Error()))
	}

	categories, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := c.client.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("category cache write failed", slog.String("error", err.Error()))
		}
	}
	return categories, nil
}

func (c *CategoryCache) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		c.logger.Warn("category cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (c *CategoryCache) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	created, err := c.next.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return created, nil
}

func (c *CategoryCache) Update(ctx context.Context, category *model.Category) error {
	if err := c.next.Update(ctx, category); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CategoryCache) Delete(ctx context.Context, id int64) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CategoryCache) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return c.next.GetByID(ctx, id)
}

var _ repository.CategoryRepository = (*CategoryCache)(nil)
