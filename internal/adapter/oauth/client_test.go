package oauth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthURL(t *testing.T) {
	client := NewHTTPClient(Config{
		ClientID:    "app-id",
		AuthURL:     "https://provider.example/auth",
		RedirectURL: "https://shop.example/api/auth/oauth/callback",
	}, discardLogger())

	raw := client.AuthURL("nonce-123")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("auth url does not parse: %v", err)
	}

	q := parsed.Query()
	if q.Get("client_id") != "app-id" {
		t.Errorf("missing client_id, got %q", q.Get("client_id"))
	}
	if q.Get("state") != "nonce-123" {
		t.Errorf("missing state, got %q", q.Get("state"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("missing response_type, got %q", q.Get("response_type"))
	}
	if q.Get("redirect_uri") != "https://shop.example/api/auth/oauth/callback" {
		t.Errorf("missing redirect_uri, got %q", q.Get("redirect_uri"))
	}
}

func TestExchange(t *testing.T) {
	var gotCode, gotGrant string

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotCode = r.PostFormValue("code")
		gotGrant = r.PostFormValue("grant_type")
		json.NewEncoder(w).Encode(map[string]string{"access_token": "at-1"})
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(map[string]string{"email": "ana@example.com", "name": "Ana"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewHTTPClient(Config{
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		TokenURL:     server.URL + "/token",
		ProfileURL:   server.URL + "/profile",
		RedirectURL:  "https://shop.example/callback",
	}, discardLogger())

	profile, err := client.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}

	if gotCode != "auth-code" || gotGrant != "authorization_code" {
		t.Errorf("unexpected token request: code=%q grant=%q", gotCode, gotGrant)
	}
	if profile.Email != "ana@example.com" || profile.Name != "Ana" {
		t.Errorf("unexpected profile %+v", profile)
	}
}

func TestExchangeEmptyAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewHTTPClient(Config{TokenURL: server.URL}, discardLogger())
	if _, err := client.Exchange(context.Background(), "code"); err == nil {
		t.Fatal("expected error for empty access token")
	}
}

func TestExchangeProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewHTTPClient(Config{TokenURL: server.URL}, discardLogger())
	if _, err := client.Exchange(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected error for provider failure")
	}
}

func TestExchangeMissingEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "at-1"})
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"name": "Sem Email"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewHTTPClient(Config{
		TokenURL:   server.URL + "/token",
		ProfileURL: server.URL + "/profile",
	}, discardLogger())

	if _, err := client.Exchange(context.Background(), "code"); err == nil {
		t.Fatal("expected error for profile without email")
	}
}
