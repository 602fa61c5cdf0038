package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is deactivated")
	ErrForbidden          = errors.New("operation not permitted")

	ErrProductUnavailable = errors.New("product is unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidInput       = errors.New("invalid input")

	ErrEmptyCart       = errors.New("cart is empty")
	ErrAddressNotOwned = errors.New("address does not belong to user")

	ErrInvalidStatusTransition = errors.New("invalid order status transition")

	ErrOrderNotDelivered      = errors.New("order is not delivered")
	ErrDeliveryDateUnknown    = errors.New("order has no delivery date")
	ErrRefundWindowExpired    = errors.New("refund window has expired")
	ErrRefundAlreadyRequested = errors.New("refund already requested")
	ErrRefundNotRequested     = errors.New("no pending refund request")
)
