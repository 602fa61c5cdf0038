package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

const gatewayActor = "gateway"

// MapGatewayStatus translates a gateway payment status into the internal
// order status. Unknown statuses map to PENDING.
func MapGatewayStatus(status string) model.OrderStatus {
	switch status {
	case "approved", "authorized":
		return model.OrderStatusPaid
	case "in_process", "in_mediation", "pending":
		return model.OrderStatusPending
	case "cancelled", "rejected":
		return model.OrderStatusCancelled
	case "refunded", "charged_back":
		return model.OrderStatusRefunded
	default:
		return model.OrderStatusPending
	}
}

// PaymentUseCase applies asynchronous gateway events to orders.
type PaymentUseCase struct {
	orders  repository.OrderRepository
	gateway payment.Client
	logger  *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, gateway payment.Client, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, gateway: gateway, logger: logger}
}

// ProcessWebhook handles one gateway notification. Errors are logged and
// swallowed so the gateway never retries; the status overwrite is
// idempotent under repeated delivery.
func (u *PaymentUseCase) ProcessWebhook(ctx context.Context, payload payment.WebhookPayload) {
	if payload.Type != "payment" {
		return
	}

	paymentID, err := payload.Data.ID.Int64()
	if err != nil {
		u.logger.Error("webhook carries malformed payment id", slog.String("id", payload.Data.ID.String()))
		return
	}

	if err := u.applyPayment(ctx, paymentID); err != nil {
		u.logger.Error("webhook processing failed",
			slog.Int64("payment_id", paymentID),
			slog.String("error", err.Error()),
		)
	}
}

// applyPayment resolves the payment, correlates the order through the
// external reference and overwrites its status.
func (u *PaymentUseCase) applyPayment(ctx context.Context, paymentID int64) error {
	pmt, err := u.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("fetch payment: %w", err)
	}

	orderID, err := strconv.ParseInt(pmt.ExternalReference, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed external reference %q", pmt.ExternalReference)
	}

	if err := u.orders.SetPaymentID(ctx, orderID, pmt.ID); err != nil {
		return fmt.Errorf("store payment id: %w", err)
	}

	status := MapGatewayStatus(pmt.Status)
	note := fmt.Sprintf("gateway status %q", pmt.Status)
	if err := u.orders.UpdateStatus(ctx, orderID, status, gatewayActor, note); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	u.logger.Info("payment applied",
		slog.Int64("order_id", orderID),
		slog.Int64("payment_id", pmt.ID),
		slog.String("status", string(status)),
	)
	return nil
}

// PendingForReconciliation returns PENDING orders created before the TTL
// cutoff for the background reconciler.
func (u *PaymentUseCase) PendingForReconciliation(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectPendingBatch(ctx, time.Now().Add(-olderThan), limit)
}

// Reconcile re-checks one stale PENDING order. Orders with a known payment
// get the gateway status reapplied; orders never paid are cancelled.
func (u *PaymentUseCase) Reconcile(ctx context.Context, order model.Order) error {
	if order.PaymentID != nil {
		return u.applyPayment(ctx, *order.PaymentID)
	}
	return u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled, "reconciler", "payment expired")
}
