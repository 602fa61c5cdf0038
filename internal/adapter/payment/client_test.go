package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewHTTPClient(server.URL, "test-token", logger)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return client
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := NewHTTPClient("/not-absolute", "token", logger); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreatePreference(t *testing.T) {
	var gotPath, gotAuth, gotIdempotency string
	var gotBody PreferenceRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("X-Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Preference{ID: "pref-1", InitPoint: "https://pay.example/pref-1"})
	})

	pref, err := client.CreatePreference(context.Background(), PreferenceRequest{
		ExternalReference: "15",
		Items:             []PreferenceItem{{Title: "Quadro", Quantity: 1, UnitPrice: 100}},
		NotificationURL:   "https://shop.example/api/payments/webhook",
	})
	if err != nil {
		t.Fatalf("create preference failed: %v", err)
	}

	if gotPath != "/checkout/preferences" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotIdempotency == "" {
		t.Errorf("expected idempotency key header")
	}
	if gotBody.ExternalReference != "15" {
		t.Errorf("unexpected external reference %q", gotBody.ExternalReference)
	}
	if pref.ID != "pref-1" || pref.InitPoint != "https://pay.example/pref-1" {
		t.Errorf("unexpected preference %+v", pref)
	}
}

func TestGetPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/42" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Payment{ID: 42, Status: "approved", ExternalReference: "15", TransactionAmount: 145})
	})

	payment, err := client.GetPayment(context.Background(), 42)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if payment.Status != "approved" || payment.ExternalReference != "15" {
		t.Fatalf("unexpected payment %+v", payment)
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := client.GetPayment(context.Background(), 42); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestGetPaymentRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GetPayment(context.Background(), 42)
	var rateErr TooManyRequestsError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if rateErr.RetryAfter != 30*time.Second {
		t.Fatalf("expected 30s retry, got %v", rateErr.RetryAfter)
	}
}

func TestRefundPayment(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	})

	if err := client.RefundPayment(context.Background(), 42); err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if gotPath != "/v1/payments/42/refunds" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestRefundPaymentNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if err := client.RefundPayment(context.Background(), 42); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Errorf("empty header: expected 5s default, got %v", d)
	}
	if d := parseRetryAfter("12"); d != 12*time.Second {
		t.Errorf("seconds header: expected 12s, got %v", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Errorf("garbage header: expected 5s default, got %v", d)
	}
}
