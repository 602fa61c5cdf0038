package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "PENDING"
	OrderStatusPaid         OrderStatus = "PAID"
	OrderStatusInProduction OrderStatus = "IN_PRODUCTION"
	OrderStatusShipped      OrderStatus = "SHIPPED"
	OrderStatusDelivered    OrderStatus = "DELIVERED"
	OrderStatusRefunded     OrderStatus = "REFUNDED"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
)

// transitions holds the allowed forward edges of the lifecycle.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:      {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:         {OrderStatusInProduction, OrderStatusRefunded},
	OrderStatusInProduction: {OrderStatusShipped},
	OrderStatusShipped:      {OrderStatusDelivered},
	OrderStatusDelivered:    {OrderStatusRefunded},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RefundStatus describes the state of a refund request on an order.
type RefundStatus string

const (
	RefundStatusNone      RefundStatus = "NONE"
	RefundStatusRequested RefundStatus = "REQUESTED"
	RefundStatusApproved  RefundStatus = "APPROVED"
	RefundStatusRejected  RefundStatus = "REJECTED"
)

// OrderItem is an immutable snapshot of a cart line at order creation.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   float64
	Quantity    int
	Subtotal    float64
}

// StatusChange is one entry of the append-only status audit trail.
type StatusChange struct {
	ID        int64
	OrderID   int64
	From      OrderStatus
	To        OrderStatus
	Actor     string
	Note      string
	CreatedAt time.Time
}

// Order is created from a cart snapshot at checkout time.
// Total equals Subtotal+ShippingAmount at creation and is never recomputed.
type Order struct {
	ID             int64
	UserID         int64
	Status         OrderStatus
	Subtotal       float64
	ShippingAmount float64
	Total          float64
	Shipping       AddressSnapshot
	Items          []OrderItem
	History        []StatusChange

	TrackingCode *string
	Carrier      *string
	DeliveredAt  *time.Time

	RefundStatus      RefundStatus
	RefundReason      *string
	RefundRequestedAt *time.Time
	RefundProcessedAt *time.Time

	PreferenceID *string
	InitPoint    *string
	PaymentID    *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckoutResult carries the persisted order and the gateway outcome.
// PaymentFailed is set when preference creation failed: the order stays
// PENDING and is not rolled back.
type CheckoutResult struct {
	Order         *Order
	InitPoint     string
	PaymentFailed bool
}
