package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

// CatalogUseCase serves the storefront catalog and its admin management.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, categories: categories}
}

// Slugify turns a display name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ListProducts returns storefront products; only active entries are visible.
func (u *CatalogUseCase) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	filter.OnlyActive = true
	return u.products.List(ctx, filter)
}

// ListAllProducts returns every product for the back office.
func (u *CatalogUseCase) ListAllProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	filter.OnlyActive = false
	return u.products.List(ctx, filter)
}

// GetProduct fetches a single product.
func (u *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// CreateProduct validates and stores a new catalog entry.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Name == "" || product.Price <= 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	if _, err := u.categories.GetByID(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	product.Active = true
	return u.products.Create(ctx, product)
}

// UpdateProduct rewrites a catalog entry.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, product *model.Product) error {
	if product.Name == "" || product.Price <= 0 {
		return domainErrors.ErrInvalidInput
	}
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	return u.products.Update(ctx, product)
}

// DeleteProduct removes a catalog entry.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}

// SetProductActive toggles storefront visibility.
func (u *CatalogUseCase) SetProductActive(ctx context.Context, id int64, active bool) error {
	return u.products.SetActive(ctx, id, active)
}

// ListCategories returns all categories.
func (u *CatalogUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// CreateCategory stores a new category.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Name == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return u.categories.Create(ctx, category)
}

// UpdateCategory rewrites a category.
func (u *CatalogUseCase) UpdateCategory(ctx context.Context, category *model.Category) error {
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return u.categories.Update(ctx, category)
}

// DeleteCategory removes a category.
func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.categories.Delete(ctx, id)
}
