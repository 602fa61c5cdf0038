package repository

import (
	"context"

	"github.com/memoriza/memoriza/internal/domain/model"
)

// CartRepository manages the single active cart of a user.
// The cart row is created lazily on first AddItem.
type CartRepository interface {
	GetActive(ctx context.Context, userID int64) (*model.Cart, error)
	AddItem(ctx context.Context, userID int64, item model.CartItem) (*model.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}
