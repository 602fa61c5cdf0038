package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	testhelpers "github.com/memoriza/memoriza/internal/test"
)

type orderFixture struct {
	orders    *testhelpers.OrderRepositoryStub
	carts     *testhelpers.CartRepositoryStub
	addresses *testhelpers.AddressRepositoryStub
	products  *testhelpers.ProductRepositoryStub
	gateway   *testhelpers.GatewayClientStub
	uc        *OrderUseCase
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:    testhelpers.NewOrderRepositoryStub(),
		carts:     testhelpers.NewCartRepositoryStub(),
		addresses: testhelpers.NewAddressRepositoryStub(),
		products:  testhelpers.NewProductRepositoryStub(),
		gateway:   &testhelpers.GatewayClientStub{},
	}
	f.uc = NewOrderUseCase(
		f.orders,
		f.carts,
		f.addresses,
		f.products,
		NewShippingUseCase(0),
		f.gateway,
		"https://shop.example/api/payments/webhook",
		7*24*time.Hour,
	)
	return f
}

func (f *orderFixture) seedAddress(t *testing.T, userID int64, zip string) *model.Address {
	t.Helper()
	address, err := f.addresses.Create(context.Background(), &model.Address{
		UserID: userID, Street: "Rua das Flores", Number: "100",
		District: "Centro", City: "Rio de Janeiro", State: "RJ", ZipCode: zip,
	})
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return address
}

func (f *orderFixture) seedCart(t *testing.T, userID int64, items ...model.CartItem) {
	t.Helper()
	for _, item := range items {
		if _, ok := f.products.Products[item.ProductID]; !ok {
			f.products.Products[item.ProductID] = &model.Product{
				ID: item.ProductID, Name: item.ProductName,
				Price: item.UnitPrice, Stock: 100, Active: true,
			}
		}
		if _, err := f.carts.AddItem(context.Background(), userID, item); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}
}

func TestCreateFromCartTotals(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// Rio zip: base fee 15, zero weight keeps the quote a flat fee.
	address := f.seedAddress(t, 1, "20040-020")
	f.seedCart(t, 1,
		model.CartItem{ProductID: 1, ProductName: "Quadro", UnitPrice: 100, Quantity: 1},
		model.CartItem{ProductID: 2, ProductName: "Caneca", UnitPrice: 15, Quantity: 2},
	)

	order, err := f.uc.CreateFromCart(ctx, 1, address.ID)
	if err != nil {
		t.Fatalf("create from cart failed: %v", err)
	}

	if order.Subtotal != 130 {
		t.Fatalf("expected subtotal 130, got %v", order.Subtotal)
	}
	if order.ShippingAmount != 15 {
		t.Fatalf("expected shipping 15, got %v", order.ShippingAmount)
	}
	if order.Total != 145 {
		t.Fatalf("expected total 145, got %v", order.Total)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected PENDING, got %s", order.Status)
	}

	var itemSum float64
	for _, item := range order.Items {
		itemSum += item.Subtotal
	}
	if itemSum != order.Subtotal {
		t.Fatalf("item subtotals %v do not add up to order subtotal %v", itemSum, order.Subtotal)
	}
	if order.Shipping.City != "Rio de Janeiro" {
		t.Fatalf("expected shipping address snapshot, got %+v", order.Shipping)
	}

	cart, err := f.carts.GetActive(ctx, 1)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected cart cleared after checkout, got cart=%v err=%v", cart, err)
	}
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	address := f.seedAddress(t, 1, "20040020")

	if _, err := f.uc.CreateFromCart(context.Background(), 1, address.ID); err != domainErrors.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateFromCartForeignAddress(t *testing.T) {
	f := newOrderFixture(t)
	address := f.seedAddress(t, 2, "20040020")
	f.seedCart(t, 1, model.CartItem{ProductID: 1, ProductName: "Quadro", UnitPrice: 50, Quantity: 1})

	if _, err := f.uc.CreateFromCart(context.Background(), 1, address.ID); err != domainErrors.ErrAddressNotOwned {
		t.Fatalf("expected ErrAddressNotOwned, got %v", err)
	}
}

func TestCreateFromCartClaimsStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	address := f.seedAddress(t, 1, "20040020")
	f.seedCart(t, 1,
		model.CartItem{ProductID: 1, ProductName: "Quadro", UnitPrice: 100, Quantity: 3},
		model.CartItem{ProductID: 2, ProductName: "Caneca", UnitPrice: 15, Quantity: 2},
	)
	f.products.Products[2].Stock = 2

	if _, err := f.uc.CreateFromCart(ctx, 1, address.ID); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := f.products.Products[1].Stock; got != 97 {
		t.Fatalf("expected stock 97, got %d", got)
	}
	if got := f.products.Products[2].Stock; got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

func TestCreateFromCartInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	address := f.seedAddress(t, 1, "20040020")
	f.seedCart(t, 1,
		model.CartItem{ProductID: 1, ProductName: "Quadro", UnitPrice: 100, Quantity: 1},
		model.CartItem{ProductID: 2, ProductName: "Caneca", UnitPrice: 15, Quantity: 5},
	)
	f.products.Products[2].Stock = 4

	if _, err := f.uc.CreateFromCart(ctx, 1, address.ID); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	// the claim on the first line is released
	if got := f.products.Products[1].Stock; got != 100 {
		t.Fatalf("expected stock restored to 100, got %d", got)
	}
	cart, err := f.carts.GetActive(ctx, 1)
	if err != nil || len(cart.Items) != 2 {
		t.Fatalf("expected cart to survive the failure, got %v / %v", cart, err)
	}
}

func TestCheckoutStoresPreference(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	address := f.seedAddress(t, 1, "20040020")
	f.seedCart(t, 1, model.CartItem{ProductID: 1, ProductName: "Quadro", UnitPrice: 100, Quantity: 1})

	var captured payment.PreferenceRequest
	f.gateway.CreatePreferenceFn = func(_ context.Context, req payment.PreferenceRequest) (*payment.Preference, error) {
		captured = req
		return &payment.Preference{ID: "pref-9", InitPoint: "https://gateway.example/pref-9"}, nil
	}

	result, err := f.uc.Checkout(ctx, 1, address.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.PaymentFailed {
		t.Fatalf("unexpected payment failure")
	}
	if result.InitPoint != "https://gateway.example/pref-9" {
		t.Fatalf("unexpected init point %q", result.InitPoint)
	}

	// one line per item plus the freight line
	if len(captured.Items) != 2 {
		t.Fatalf("expected 2 preference items, got %d", len(captured.Items))
	}
	if captured.Items[1].Title != "Frete" || captured.Items[1].UnitPrice != 15 {
		t.Fatalf("expected freight line of 15, got %+v", captured.Items[1])
	}
	if captured.NotificationURL != "https://shop.example/api/payments/webhook" {
		t.Fatalf("unexpected notification url %q", captured.NotificationURL)
	}

	stored, err := f.orders.GetByID(ctx, result.Order.ID)
	if err != nil {
		t.Fatalf("stored order missing: %v", err)
	}
	if stored.PreferenceID == nil || *stored.PreferenceID != "pref-9" {
		t.Fatalf("expected preference recorded, got %v", stored.PreferenceID)
	}
}

func TestCheckoutGatewayFailureKeepsOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	address := f.seedAddress(t, 1, "20040020")
	f.seedCart(t, 1, model.CartItem{ProductID: 1, ProductName: "Quadro", UnitPrice: 100, Quantity: 1})

	f.gateway.CreatePreferenceFn = func(context.Context, payment.PreferenceRequest) (*payment.Preference, error) {
		return nil, errors.New("gateway down")
	}

	result, err := f.uc.Checkout(ctx, 1, address.ID)
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if !result.PaymentFailed {
		t.Fatalf("expected payment failure to be reported")
	}

	stored, err := f.orders.GetByID(ctx, result.Order.ID)
	if err != nil {
		t.Fatalf("order should persist despite gateway failure: %v", err)
	}
	if stored.Status != model.OrderStatusPending {
		t.Fatalf("expected PENDING after gateway failure, got %s", stored.Status)
	}
}

func seedDeliveredOrder(t *testing.T, f *orderFixture, deliveredAgo time.Duration) *model.Order {
	t.Helper()
	ctx := context.Background()
	order, err := f.orders.Create(ctx, &model.Order{
		UserID: 1, Status: model.OrderStatusDelivered,
		Subtotal: 100, ShippingAmount: 15, Total: 115,
		RefundStatus: model.RefundStatusNone,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	deliveredAt := time.Now().Add(-deliveredAgo)
	f.orders.Orders[order.ID].DeliveredAt = &deliveredAt
	return order
}

func TestRequestRefundWithinWindow(t *testing.T) {
	f := newOrderFixture(t)
	order := seedDeliveredOrder(t, f, 3*24*time.Hour)

	if err := f.uc.RequestRefund(context.Background(), 1, order.ID, "veio trincado"); err != nil {
		t.Fatalf("refund request failed: %v", err)
	}

	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	if stored.RefundStatus != model.RefundStatusRequested {
		t.Fatalf("expected REQUESTED, got %s", stored.RefundStatus)
	}
	if stored.RefundReason == nil || *stored.RefundReason != "veio trincado" {
		t.Fatalf("expected reason stored, got %v", stored.RefundReason)
	}
}

func TestRequestRefundWindowExpired(t *testing.T) {
	f := newOrderFixture(t)
	// delivered eight days ago: one day past the seven-day window
	order := seedDeliveredOrder(t, f, 8*24*time.Hour)

	err := f.uc.RequestRefund(context.Background(), 1, order.ID, "mudei de ideia")
	if err != domainErrors.ErrRefundWindowExpired {
		t.Fatalf("expected ErrRefundWindowExpired, got %v", err)
	}
}

func TestRequestRefundEligibilitySequence(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	pending, _ := f.orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})
	if err := f.uc.RequestRefund(ctx, 1, pending.ID, ""); err != domainErrors.ErrOrderNotDelivered {
		t.Fatalf("expected ErrOrderNotDelivered, got %v", err)
	}

	noDate, _ := f.orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusDelivered})
	if err := f.uc.RequestRefund(ctx, 1, noDate.ID, ""); err != domainErrors.ErrDeliveryDateUnknown {
		t.Fatalf("expected ErrDeliveryDateUnknown, got %v", err)
	}

	requested := seedDeliveredOrder(t, f, 24*time.Hour)
	if err := f.uc.RequestRefund(ctx, 1, requested.ID, "first"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if err := f.uc.RequestRefund(ctx, 1, requested.ID, "second"); err != domainErrors.ErrRefundAlreadyRequested {
		t.Fatalf("expected ErrRefundAlreadyRequested, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, _ := f.orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})

	if err := f.uc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped, "user:9", "", "", ""); err != domainErrors.ErrInvalidStatusTransition {
		t.Fatalf("expected invalid transition PENDING->SHIPPED, got %v", err)
	}

	for _, status := range []model.OrderStatus{
		model.OrderStatusPaid,
		model.OrderStatusInProduction,
	} {
		if err := f.uc.UpdateStatus(ctx, order.ID, status, "user:9", "", "", ""); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	if err := f.uc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped, "user:9", "", "sedex", "BR123"); err != nil {
		t.Fatalf("ship failed: %v", err)
	}
	stored, _ := f.orders.GetByID(ctx, order.ID)
	if stored.TrackingCode == nil || *stored.TrackingCode != "BR123" {
		t.Fatalf("expected tracking code stored, got %v", stored.TrackingCode)
	}

	if err := f.uc.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered, "user:9", "", "", ""); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	stored, _ = f.orders.GetByID(ctx, order.ID)
	if stored.DeliveredAt == nil {
		t.Fatalf("expected delivery timestamp stamped")
	}
}

func TestApproveRefund(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := seedDeliveredOrder(t, f, 24*time.Hour)
	paymentID := int64(555)
	f.orders.Orders[order.ID].PaymentID = &paymentID

	if err := f.uc.ApproveRefund(ctx, order.ID, "user:9"); err != domainErrors.ErrRefundNotRequested {
		t.Fatalf("expected ErrRefundNotRequested before request, got %v", err)
	}

	if err := f.uc.RequestRefund(ctx, 1, order.ID, "defeito"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := f.uc.ApproveRefund(ctx, order.ID, "user:9"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	stored, _ := f.orders.GetByID(ctx, order.ID)
	if stored.Status != model.OrderStatusRefunded {
		t.Fatalf("expected REFUNDED, got %s", stored.Status)
	}
	if stored.RefundStatus != model.RefundStatusApproved {
		t.Fatalf("expected APPROVED, got %s", stored.RefundStatus)
	}
	if len(f.gateway.Refunds) != 1 || f.gateway.Refunds[0] != 555 {
		t.Fatalf("expected gateway refund of payment 555, got %v", f.gateway.Refunds)
	}
}

func TestRejectRefundKeepsStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := seedDeliveredOrder(t, f, 24*time.Hour)
	if err := f.uc.RequestRefund(ctx, 1, order.ID, "nao gostei"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := f.uc.RejectRefund(ctx, order.ID, "user:9", "fora da politica"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	stored, _ := f.orders.GetByID(ctx, order.ID)
	if stored.Status != model.OrderStatusDelivered {
		t.Fatalf("expected order to stay DELIVERED, got %s", stored.Status)
	}
	if stored.RefundStatus != model.RefundStatusRejected {
		t.Fatalf("expected REJECTED, got %s", stored.RefundStatus)
	}
	last := stored.History[len(stored.History)-1]
	if last.Note != "fora da politica" || last.Actor != "user:9" {
		t.Fatalf("expected audit entry with note, got %+v", last)
	}
}

func TestRejectRefundKeepsDeliveryDate(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := seedDeliveredOrder(t, f, 6*24*time.Hour)
	deliveredAt := *f.orders.Orders[order.ID].DeliveredAt

	if err := f.uc.RequestRefund(ctx, 1, order.ID, "chegou amassado"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := f.uc.RejectRefund(ctx, order.ID, "user:9", ""); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	stored, _ := f.orders.GetByID(ctx, order.ID)
	if stored.DeliveredAt == nil || !stored.DeliveredAt.Equal(deliveredAt) {
		t.Fatalf("delivery timestamp changed: had %v, got %v", deliveredAt, stored.DeliveredAt)
	}
}
