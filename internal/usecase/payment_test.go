package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/domain/model"
	testhelpers "github.com/memoriza/memoriza/internal/test"
)

func TestMapGatewayStatus(t *testing.T) {
	cases := []struct {
		gateway string
		want    model.OrderStatus
	}{
		{"approved", model.OrderStatusPaid},
		{"authorized", model.OrderStatusPaid},
		{"in_process", model.OrderStatusPending},
		{"in_mediation", model.OrderStatusPending},
		{"pending", model.OrderStatusPending},
		{"cancelled", model.OrderStatusCancelled},
		{"rejected", model.OrderStatusCancelled},
		{"refunded", model.OrderStatusRefunded},
		{"charged_back", model.OrderStatusRefunded},
		{"something_new", model.OrderStatusPending},
		{"", model.OrderStatusPending},
	}
	for _, tc := range cases {
		if got := MapGatewayStatus(tc.gateway); got != tc.want {
			t.Errorf("MapGatewayStatus(%q) = %s, want %s", tc.gateway, got, tc.want)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func webhookPayload(t *testing.T, typ, id string) payment.WebhookPayload {
	t.Helper()
	var payload payment.WebhookPayload
	payload.Type = typ
	payload.Data.ID = json.Number(id)
	return payload
}

func TestProcessWebhookAppliesPayment(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	gateway := &testhelpers.GatewayClientStub{}
	uc := NewPaymentUseCase(orders, gateway, discardLogger())
	ctx := context.Background()

	order, _ := orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})
	gateway.GetPaymentFn = func(_ context.Context, id int64) (*payment.Payment, error) {
		return &payment.Payment{ID: id, Status: "approved", ExternalReference: "1"}, nil
	}

	uc.ProcessWebhook(ctx, webhookPayload(t, "payment", "42"))

	stored, _ := orders.GetByID(ctx, order.ID)
	if stored.Status != model.OrderStatusPaid {
		t.Fatalf("expected PAID, got %s", stored.Status)
	}
	if stored.PaymentID == nil || *stored.PaymentID != 42 {
		t.Fatalf("expected payment id 42, got %v", stored.PaymentID)
	}
	last := stored.History[len(stored.History)-1]
	if last.Actor != "gateway" {
		t.Fatalf("expected gateway actor, got %q", last.Actor)
	}
}

func TestProcessWebhookIgnoresOtherTypes(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	gateway := &testhelpers.GatewayClientStub{}
	gateway.GetPaymentFn = func(context.Context, int64) (*payment.Payment, error) {
		t.Fatal("gateway must not be queried for non-payment events")
		return nil, nil
	}
	uc := NewPaymentUseCase(orders, gateway, discardLogger())

	uc.ProcessWebhook(context.Background(), webhookPayload(t, "merchant_order", "42"))
}

func TestProcessWebhookSwallowsErrors(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	gateway := &testhelpers.GatewayClientStub{}
	gateway.GetPaymentFn = func(context.Context, int64) (*payment.Payment, error) {
		return nil, errors.New("gateway down")
	}
	uc := NewPaymentUseCase(orders, gateway, discardLogger())

	// must not panic and must not surface the error
	uc.ProcessWebhook(context.Background(), webhookPayload(t, "payment", "42"))
	uc.ProcessWebhook(context.Background(), webhookPayload(t, "payment", "not-a-number"))
}

func TestProcessWebhookRepeatedDelivery(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	gateway := &testhelpers.GatewayClientStub{}
	uc := NewPaymentUseCase(orders, gateway, discardLogger())
	ctx := context.Background()

	order, _ := orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})

	payload := webhookPayload(t, "payment", "7")
	uc.ProcessWebhook(ctx, payload)
	uc.ProcessWebhook(ctx, payload)

	stored, _ := orders.GetByID(ctx, order.ID)
	if stored.Status != model.OrderStatusPaid {
		t.Fatalf("expected PAID after repeated delivery, got %s", stored.Status)
	}
}

func TestReconcileCancelsUnpaidOrder(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	uc := NewPaymentUseCase(orders, &testhelpers.GatewayClientStub{}, discardLogger())
	ctx := context.Background()

	order, _ := orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})

	if err := uc.Reconcile(ctx, *order); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	stored, _ := orders.GetByID(ctx, order.ID)
	if stored.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", stored.Status)
	}
	last := stored.History[len(stored.History)-1]
	if last.Actor != "reconciler" {
		t.Fatalf("expected reconciler actor, got %q", last.Actor)
	}
}

func TestReconcileReappliesKnownPayment(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	gateway := &testhelpers.GatewayClientStub{}
	uc := NewPaymentUseCase(orders, gateway, discardLogger())
	ctx := context.Background()

	order, _ := orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})
	paymentID := int64(9)
	orders.Orders[order.ID].PaymentID = &paymentID
	gateway.GetPaymentFn = func(_ context.Context, id int64) (*payment.Payment, error) {
		return &payment.Payment{ID: id, Status: "rejected", ExternalReference: "1"}, nil
	}

	withPayment, _ := orders.GetByID(ctx, order.ID)
	if err := uc.Reconcile(ctx, *withPayment); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	stored, _ := orders.GetByID(ctx, order.ID)
	if stored.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED from rejected payment, got %s", stored.Status)
	}
}

func TestPendingForReconciliation(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	uc := NewPaymentUseCase(orders, &testhelpers.GatewayClientStub{}, discardLogger())
	ctx := context.Background()

	stale, _ := orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})
	orders.Orders[stale.ID].CreatedAt = time.Now().Add(-2 * time.Hour)
	fresh, _ := orders.Create(ctx, &model.Order{UserID: 1, Status: model.OrderStatusPending})
	_ = fresh

	batch, err := uc.PendingForReconciliation(ctx, time.Hour, 50)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != stale.ID {
		t.Fatalf("expected only the stale order, got %+v", batch)
	}
}
