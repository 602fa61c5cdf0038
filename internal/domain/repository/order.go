package repository

import (
	"context"
	"time"

	"github.com/memoriza/memoriza/internal/domain/model"
)

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status *model.OrderStatus
	Limit  int
	Offset int
}

// OrderRepository describes persistence operations for orders.
// Create persists the order, its item snapshots and the initial status
// history entry within one transaction.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetForUser(ctx context.Context, userID, id int64) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)

	// UpdateStatus overwrites the status and appends a history entry.
	// DeliveredAt is stamped when the new status is DELIVERED.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, actor, note string) error
	SetTracking(ctx context.Context, id int64, carrier, code string) error
	SetPreference(ctx context.Context, id int64, preferenceID, initPoint string) error
	SetPaymentID(ctx context.Context, id int64, paymentID int64) error

	RequestRefund(ctx context.Context, id int64, reason string, at time.Time) error
	ResolveRefund(ctx context.Context, id int64, status model.RefundStatus, at time.Time) error

	// SelectPendingBatch locks and returns PENDING orders created before
	// the cutoff for reconciliation, skipping rows locked by other workers.
	SelectPendingBatch(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}
