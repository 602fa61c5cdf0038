package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/memoriza/memoriza/internal/config"
	"github.com/memoriza/memoriza/internal/domain/repository"
	"github.com/memoriza/memoriza/internal/storage/postgres"
)

// Module provides the catalog repositories, wrapped in redis caches when a
// redis address is configured.
var Module = fx.Provide(newCatalogRepositories)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Storage   *postgres.Storage
}

func newCatalogRepositories(p cacheParams) (repository.ProductRepository, repository.CategoryRepository) {
	rawProducts := p.Storage.Products()
	rawCategories := p.Storage.Categories()
	if p.Config.RedisAddr == "" {
		return rawProducts, rawCategories
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddr})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewProductCache(rawProducts, client, 5*time.Minute, p.Logger),
		NewCategoryCache(rawCategories, client, 5*time.Minute, p.Logger)
}
