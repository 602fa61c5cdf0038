package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

const productKeyPrefix = "product:"

// ProductCache is a cache-aside decorator over the product repository.
// Reads by id go through redis; every mutation drops the cached entry.
type ProductCache struct {
	next   repository.ProductRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewProductCache wraps the repository with a redis-backed cache.
func NewProductCache(next repository.ProductRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{next: next, client: client, ttl: ttl, logger: logger}
}

func productKey(id int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

func (c *ProductCache) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	key := productKey(id)
	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		var product model.Product
		if err := json.Unmarshal([]byte(raw), &product); err == nil {
			return &product, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("product cache read failed", slog.String("error", err.Error()))
	}

	product, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("product cache write failed", slog.String("error", err.Error()))
		}
	}
	return product, nil
}

func (c *ProductCache) invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (c *ProductCache) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	return c.next.Create(ctx, product)
}

func (c *ProductCache) Update(ctx context.Context, product *model.Product) error {
	if err := c.next.Update(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, product.ID)
	return nil
}

func (c *ProductCache) Delete(ctx context.Context, id int64) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *ProductCache) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return c.next.List(ctx, filter)
}

func (c *ProductCache) SetActive(ctx context.Context, id int64, active bool) error {
	if err := c.next.SetActive(ctx, id, active); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *ProductCache) DecrementStock(ctx context.Context, id int64, quantity int) error {
	if err := c.next.DecrementStock(ctx, id, quantity); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

var _ repository.ProductRepository = (*ProductCache)(nil)
