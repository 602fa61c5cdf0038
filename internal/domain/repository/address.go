package repository

import (
	"context"

	"github.com/memoriza/memoriza/internal/domain/model"
)

// AddressRepository describes persistence operations for delivery addresses.
// Reads are owner-scoped through the query predicate.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, userID, id int64) error
	GetByID(ctx context.Context, userID, id int64) (*model.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)
}
