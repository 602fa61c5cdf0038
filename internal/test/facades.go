package test

import (
	"context"
	"sync"
	"time"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/domain/model"
)

// GatewayClientStub simulates the payment gateway.
type GatewayClientStub struct {
	CreatePreferenceFn func(context.Context, payment.PreferenceRequest) (*payment.Preference, error)
	GetPaymentFn       func(context.Context, int64) (*payment.Payment, error)
	RefundPaymentFn    func(context.Context, int64) error

	mu      sync.Mutex
	Refunds []int64
}

// CreatePreference returns a fixed preference unless overridden.
func (s *GatewayClientStub) CreatePreference(ctx context.Context, req payment.PreferenceRequest) (*payment.Preference, error) {
	if s.CreatePreferenceFn != nil {
		return s.CreatePreferenceFn(ctx, req)
	}
	return &payment.Preference{ID: "pref-1", InitPoint: "https://gateway.example/checkout/pref-1"}, nil
}

// GetPayment returns an approved payment unless overridden.
func (s *GatewayClientStub) GetPayment(ctx context.Context, id int64) (*payment.Payment, error) {
	if s.GetPaymentFn != nil {
		return s.GetPaymentFn(ctx, id)
	}
	return &payment.Payment{ID: id, Status: "approved", ExternalReference: "1"}, nil
}

// RefundPayment records the refunded payment identifier.
func (s *GatewayClientStub) RefundPayment(ctx context.Context, id int64) error {
	if s.RefundPaymentFn != nil {
		return s.RefundPaymentFn(ctx, id)
	}
	s.mu.Lock()
	s.Refunds = append(s.Refunds, id)
	s.mu.Unlock()
	return nil
}

var _ payment.Client = (*GatewayClientStub)(nil)

// ReconcilerFacadeStub drives the background worker in tests.
type ReconcilerFacadeStub struct {
	PendingOrdersFn  func(context.Context, time.Duration, int) ([]model.Order, error)
	ReconcileOrderFn func(context.Context, model.Order) error

	mu         sync.Mutex
	Reconciled []int64
}

// PendingOrders returns the configured batch.
func (s *ReconcilerFacadeStub) PendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.PendingOrdersFn != nil {
		return s.PendingOrdersFn(ctx, olderThan, limit)
	}
	return nil, nil
}

// ReconcileOrder records the processed order identifier.
func (s *ReconcilerFacadeStub) ReconcileOrder(ctx context.Context, order model.Order) error {
	if s.ReconcileOrderFn != nil {
		return s.ReconcileOrderFn(ctx, order)
	}
	s.mu.Lock()
	s.Reconciled = append(s.Reconciled, order.ID)
	s.mu.Unlock()
	return nil
}

// ReconciledIDs returns a snapshot of processed order identifiers.
func (s *ReconcilerFacadeStub) ReconciledIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Reconciled...)
}
