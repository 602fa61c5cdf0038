package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

// OrderUseCase encapsulates checkout, the order lifecycle and refunds.
type OrderUseCase struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	addresses repository.AddressRepository
	products  repository.ProductRepository
	shipping  *ShippingUseCase
	gateway   payment.Client

	webhookURL   string
	refundWindow time.Duration
	now          func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	addresses repository.AddressRepository,
	products repository.ProductRepository,
	shipping *ShippingUseCase,
	gateway payment.Client,
	webhookURL string,
	refundWindow time.Duration,
) *OrderUseCase {
	if refundWindow <= 0 {
		refundWindow = 7 * 24 * time.Hour
	}
	return &OrderUseCase{
		orders:       orders,
		carts:        carts,
		addresses:    addresses,
		products:     products,
		shipping:     shipping,
		gateway:      gateway,
		webhookURL:   webhookURL,
		refundWindow: refundWindow,
		now:          time.Now,
	}
}

// CreateFromCart snapshots the active cart and shipping address into a new
// PENDING order. The cart is cleared only after the order persists.
func (u *OrderUseCase) CreateFromCart(ctx context.Context, userID, addressID int64) (*model.Order, error) {
	cart, err := u.carts.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrEmptyCart
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domainErrors.ErrEmptyCart
	}

	address, err := u.addresses.GetByID(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrAddressNotOwned
		}
		return nil, err
	}

	subtotal := cart.Subtotal()
	quote, err := u.shipping.Quote(address.ZipCode, cart.WeightGrams(), subtotal)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:         userID,
		Status:         model.OrderStatusPending,
		Subtotal:       subtotal,
		ShippingAmount: quote.Amount,
		Total:          subtotal + quote.Amount,
		Shipping:       model.SnapshotAddress(address),
		RefundStatus:   model.RefundStatusNone,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		})
	}

	if err := u.claimStock(ctx, cart.Items); err != nil {
		return nil, err
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		u.releaseStock(ctx, cart.Items)
		return nil, err
	}

	if err := u.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return created, nil
}

// claimStock decrements stock for every cart line; a line that cannot be
// satisfied releases the lines claimed before it.
func (u *OrderUseCase) claimStock(ctx context.Context, items []model.CartItem) error {
	for i, item := range items {
		if err := u.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			u.releaseStock(ctx, items[:i])
			return err
		}
	}
	return nil
}

// releaseStock returns claimed quantities via a negative decrement.
func (u *OrderUseCase) releaseStock(ctx context.Context, items []model.CartItem) {
	for _, item := range items {
		_ = u.products.DecrementStock(ctx, item.ProductID, -item.Quantity)
	}
}

// Checkout creates the order and requests a gateway checkout preference.
// On gateway failure the persisted order stays PENDING and the result
// reports the failure instead of rolling back.
func (u *OrderUseCase) Checkout(ctx context.Context, userID, addressID int64) (*model.CheckoutResult, error) {
	order, err := u.CreateFromCart(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	pref, err := u.gateway.CreatePreference(ctx, u.buildPreference(order))
	if err != nil {
		return &model.CheckoutResult{Order: order, PaymentFailed: true}, nil
	}

	if err := u.orders.SetPreference(ctx, order.ID, pref.ID, pref.InitPoint); err != nil {
		return nil, err
	}
	order.PreferenceID = &pref.ID
	order.InitPoint = &pref.InitPoint

	return &model.CheckoutResult{Order: order, InitPoint: pref.InitPoint}, nil
}

// buildPreference mirrors order items 1:1 and adds a synthetic shipping
// line when the shipping amount is positive.
func (u *OrderUseCase) buildPreference(order *model.Order) payment.PreferenceRequest {
	req := payment.PreferenceRequest{
		ExternalReference: strconv.FormatInt(order.ID, 10),
		NotificationURL:   u.webhookURL,
	}
	for _, item := range order.Items {
		req.Items = append(req.Items, payment.PreferenceItem{
			Title:     item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if order.ShippingAmount > 0 {
		req.Items = append(req.Items, payment.PreferenceItem{
			Title:     "Frete",
			Quantity:  1,
			UnitPrice: order.ShippingAmount,
		})
	}
	return req
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Get returns one order scoped to the owner.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return u.orders.GetForUser(ctx, userID, orderID)
}

// RequestRefund evaluates refund eligibility in sequence and records the
// request. Each failing condition yields its own error.
func (u *OrderUseCase) RequestRefund(ctx context.Context, userID, orderID int64, reason string) error {
	order, err := u.orders.GetForUser(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if order.Status != model.OrderStatusDelivered {
		return domainErrors.ErrOrderNotDelivered
	}
	if order.DeliveredAt == nil {
		return domainErrors.ErrDeliveryDateUnknown
	}
	if u.now().Sub(*order.DeliveredAt) > u.refundWindow {
		return domainErrors.ErrRefundWindowExpired
	}
	if order.RefundStatus != "" && order.RefundStatus != model.RefundStatusNone {
		return domainErrors.ErrRefundAlreadyRequested
	}

	return u.orders.RequestRefund(ctx, orderID, reason, u.now())
}

// --- back-office operations ---

// List returns orders for the back office.
func (u *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return u.orders.List(ctx, filter)
}

// GetAny returns one order without ownership scoping.
func (u *OrderUseCase) GetAny(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// UpdateStatus applies a guarded transition on behalf of an operator.
// Tracking data is stored when the order ships.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, to model.OrderStatus, actor, note, carrier, trackingCode string) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !model.CanTransition(order.Status, to) {
		return domainErrors.ErrInvalidStatusTransition
	}

	if to == model.OrderStatusShipped && trackingCode != "" {
		if err := u.orders.SetTracking(ctx, orderID, carrier, trackingCode); err != nil {
			return err
		}
	}

	return u.orders.UpdateStatus(ctx, orderID, to, actor, note)
}

// ApproveRefund refunds the gateway payment and moves the order to REFUNDED.
func (u *OrderUseCase) ApproveRefund(ctx context.Context, orderID int64, actor string) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.RefundStatus != model.RefundStatusRequested {
		return domainErrors.ErrRefundNotRequested
	}
	if !model.CanTransition(order.Status, model.OrderStatusRefunded) {
		return domainErrors.ErrInvalidStatusTransition
	}

	if order.PaymentID != nil {
		if err := u.gateway.RefundPayment(ctx, *order.PaymentID); err != nil {
			return fmt.Errorf("gateway refund: %w", err)
		}
	}

	if err := u.orders.ResolveRefund(ctx, orderID, model.RefundStatusApproved, u.now()); err != nil {
		return err
	}
	return u.orders.UpdateStatus(ctx, orderID, model.OrderStatusRefunded, actor, "refund approved")
}

// RejectRefund declines a pending refund request.
func (u *OrderUseCase) RejectRefund(ctx context.Context, orderID int64, actor, note string) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.RefundStatus != model.RefundStatusRequested {
		return domainErrors.ErrRefundNotRequested
	}

	if err := u.orders.ResolveRefund(ctx, orderID, model.RefundStatusRejected, u.now()); err != nil {
		return err
	}
	if note == "" {
		note = "refund rejected"
	}
	// Status does not change; the self-transition only records the audit entry.
	return u.orders.UpdateStatus(ctx, orderID, order.Status, actor, note)
}
