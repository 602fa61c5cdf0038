package config

import (
	"testing"
	"time"
)

func envMap(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"DATABASE_URI":            "postgres://localhost/memoriza",
		"PAYMENT_GATEWAY_ADDRESS": "https://gateway.example",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Errorf("expected default run address, got %q", cfg.RunAddress)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.RefundWindow != 7*24*time.Hour {
		t.Errorf("expected default refund window, got %v", cfg.RefundWindow)
	}
	if cfg.FreeShippingThreshold != 300 {
		t.Errorf("expected default free shipping threshold, got %v", cfg.FreeShippingThreshold)
	}
	if cfg.WorkerPoolSize != 4 {
		t.Errorf("expected default worker pool, got %d", cfg.WorkerPoolSize)
	}
	if cfg.OAuthRedirectURL != "http://localhost:8080/api/auth/oauth/callback" {
		t.Errorf("expected derived oauth redirect, got %q", cfg.OAuthRedirectURL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"DATABASE_URI":            "postgres://db/memoriza",
		"PAYMENT_GATEWAY_ADDRESS": "https://gateway.example",
		"RUN_ADDRESS":             ":9090",
		"REDIS_ADDR":              "redis:6379",
		"TOKEN_TTL":               "2h",
		"REFUND_WINDOW":           "96h",
		"FREE_SHIPPING_THRESHOLD": "150.5",
		"RECONCILE_BATCH_SIZE":    "8",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected :9090, got %q", cfg.RunAddress)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("expected redis addr, got %q", cfg.RedisAddr)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h ttl, got %v", cfg.TokenTTL)
	}
	if cfg.RefundWindow != 96*time.Hour {
		t.Errorf("expected 96h refund window, got %v", cfg.RefundWindow)
	}
	if cfg.FreeShippingThreshold != 150.5 {
		t.Errorf("expected 150.5 threshold, got %v", cfg.FreeShippingThreshold)
	}
	if cfg.ReconcileBatch != 8 {
		t.Errorf("expected batch 8, got %d", cfg.ReconcileBatch)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	cfg, err := load(
		[]string{"-a", ":7070", "-g", "https://flag-gateway.example", "-reconcile-interval", "30s", "-worker-pool", "2"},
		envMap(map[string]string{
			"DATABASE_URI":            "postgres://db/memoriza",
			"PAYMENT_GATEWAY_ADDRESS": "https://env-gateway.example",
			"RUN_ADDRESS":             ":9090",
		}),
	)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RunAddress != ":7070" {
		t.Errorf("expected flag to win, got %q", cfg.RunAddress)
	}
	if cfg.GatewayAddress != "https://flag-gateway.example" {
		t.Errorf("expected flag gateway, got %q", cfg.GatewayAddress)
	}
	if cfg.ReconcileInterval != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", cfg.ReconcileInterval)
	}
	if cfg.WorkerPoolSize != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.WorkerPoolSize)
	}
}

func TestLoadRequiresDatabase(t *testing.T) {
	if _, err := load(nil, envMap(map[string]string{
		"PAYMENT_GATEWAY_ADDRESS": "https://gateway.example",
	})); err == nil {
		t.Fatal("expected error without database URI")
	}
}

func TestLoadRequiresGateway(t *testing.T) {
	if _, err := load(nil, envMap(map[string]string{
		"DATABASE_URI": "postgres://db/memoriza",
	})); err == nil {
		t.Fatal("expected error without gateway address")
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"DATABASE_URI":            "postgres://db/memoriza",
		"PAYMENT_GATEWAY_ADDRESS": "https://gateway.example",
		"TOKEN_TTL":               "not-a-duration",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected fallback ttl, got %v", cfg.TokenTTL)
	}
}
