package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

// CartUseCase manages the user's active shopping cart.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Get returns the active cart; a user without one gets an empty cart view.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := u.carts.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Cart{UserID: userID}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem validates the product and merges it into the cart. The line unit
// price snapshots the current product price.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, domainErrors.ErrProductUnavailable
	}
	if product.Stock < quantity {
		return nil, domainErrors.ErrInsufficientStock
	}

	return u.carts.AddItem(ctx, userID, model.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		WeightGrams: product.WeightGrams,
	})
}

// UpdateItemQuantity changes a line quantity; zero removes the line.
func (u *CartUseCase) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if quantity < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	if quantity == 0 {
		return u.carts.RemoveItem(ctx, userID, itemID)
	}
	return u.carts.UpdateItemQuantity(ctx, userID, itemID, quantity)
}

// RemoveItem deletes a line from the cart.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return u.carts.RemoveItem(ctx, userID, itemID)
}

// Clear removes every line from the cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}
