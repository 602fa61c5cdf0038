package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memoriza/memoriza/internal/domain/model"
	testhelpers "github.com/memoriza/memoriza/internal/test"
)

// unreachableClient returns a client whose every command fails, so the
// decorator has to serve from the underlying repository.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCategoryCacheServesRepositoryWhenRedisDown(t *testing.T) {
	repo := testhelpers.NewCategoryRepositoryStub()
	ctx := context.Background()
	seeded, err := repo.Create(ctx, &model.Category{Name: "Canecas"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	client := unreachableClient()
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cached := NewCategoryCache(repo, client, time.Minute, logger)

	categories, err := cached.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Canecas" {
		t.Fatalf("unexpected categories: %+v", categories)
	}

	got, err := cached.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("expected category %d, got %d", seeded.ID, got.ID)
	}
}

func TestCategoryCacheMutationsReachRepository(t *testing.T) {
	repo := testhelpers.NewCategoryRepositoryStub()
	ctx := context.Background()

	client := unreachableClient()
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cached := NewCategoryCache(repo, client, time.Minute, logger)

	created, err := cached.Create(ctx, &model.Category{Name: "Camisetas"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Name = "Camisetas Estampadas"
	if err := cached.Update(ctx, created); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Name != "Camisetas Estampadas" {
		t.Fatalf("update not applied, got %q", stored.Name)
	}

	if err := cached.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); err == nil {
		t.Fatal("expected deleted category to be gone")
	}
}
