package test

import (
	"context"
	"errors"

	"github.com/memoriza/memoriza/internal/adapter/oauth"
	"github.com/memoriza/memoriza/internal/domain/model"
	pkgAuth "github.com/memoriza/memoriza/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(*model.User) (string, error)
	ParseFn func(string) (*pkgAuth.Identity, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(user *model.User) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(user)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Identity{UserID: 1, GroupID: model.GroupCustomer}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// OAuthClientStub simulates the external identity provider.
type OAuthClientStub struct {
	URL        string
	ExchangeFn func(context.Context, string) (*oauth.Profile, error)
}

// AuthURL returns the configured consent URL.
func (s OAuthClientStub) AuthURL(state string) string {
	if s.URL != "" {
		return s.URL + "?state=" + state
	}
	return "https://provider.example/auth?state=" + state
}

// Exchange returns a fixed profile unless overridden.
func (s OAuthClientStub) Exchange(ctx context.Context, code string) (*oauth.Profile, error) {
	if s.ExchangeFn != nil {
		return s.ExchangeFn(ctx, code)
	}
	return &oauth.Profile{Email: "oauth@example.com", Name: "OAuth User"}, nil
}

// Provider names the stub provider.
func (s OAuthClientStub) Provider() string { return "stub" }

var (
	_ pkgAuth.PasswordHasher = HasherStub{}
	_ pkgAuth.Strategy       = StrategyStub{}
	_ oauth.Client           = OAuthClientStub{}
)
