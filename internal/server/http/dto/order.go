package dto

import "time"

// CheckoutRequest starts checkout from the active cart.
type CheckoutRequest struct {
	AddressID int64 `json:"address_id"`
}

// CheckoutResponse carries the created order and the payment redirect.
type CheckoutResponse struct {
	Order         OrderResponse `json:"order"`
	InitPoint     string        `json:"init_point,omitempty"`
	PaymentFailed bool          `json:"payment_failed,omitempty"`
}

// OrderItemResponse is one frozen order line.
type OrderItemResponse struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// StatusChangeResponse is one audit-trail entry.
type StatusChangeResponse struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	Actor     string    `json:"actor"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShippingAddressResponse is the frozen delivery address of an order.
type ShippingAddressResponse struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// OrderResponse is the full order view.
type OrderResponse struct {
	ID             int64                   `json:"id"`
	Status         string                  `json:"status"`
	Subtotal       float64                 `json:"subtotal"`
	ShippingAmount float64                 `json:"shipping_amount"`
	Total          float64                 `json:"total"`
	Shipping       ShippingAddressResponse `json:"shipping_address"`
	Items          []OrderItemResponse     `json:"items"`
	History        []StatusChangeResponse  `json:"history,omitempty"`
	TrackingCode   *string                 `json:"tracking_code,omitempty"`
	Carrier        *string                 `json:"carrier,omitempty"`
	DeliveredAt    *time.Time              `json:"delivered_at,omitempty"`
	RefundStatus   string                  `json:"refund_status,omitempty"`
	RefundReason   *string                 `json:"refund_reason,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// RefundRequest asks for a refund on a delivered order.
type RefundRequest struct {
	Reason string `json:"reason"`
}
