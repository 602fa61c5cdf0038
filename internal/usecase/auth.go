package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/memoriza/memoriza/internal/adapter/oauth"
	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
	pkgAuth "github.com/memoriza/memoriza/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle, credentials and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	provider oauth.Client
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, provider oauth.Client) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, provider: provider}
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		GroupID:      model.GroupCustomer,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !usr.Active {
		return nil, "", domainErrors.ErrUserInactive
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// OAuthURL builds the provider consent URL for the given state nonce.
func (u *AuthUseCase) OAuthURL(state string) string {
	return u.provider.AuthURL(state)
}

// OAuthCallback exchanges the authorization code, looks up or creates the
// account by normalized email and returns an auth token.
func (u *AuthUseCase) OAuthCallback(ctx context.Context, code string) (*model.User, string, error) {
	if code == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	profile, err := u.provider.Exchange(ctx, code)
	if err != nil {
		return nil, "", err
	}

	email := NormalizeEmail(profile.Email)
	providerName := u.provider.Provider()
	usr, err := u.users.GetByEmail(ctx, email)
	if errors.Is(err, domainErrors.ErrNotFound) {
		usr, err = u.users.Create(ctx, &model.User{
			Name:          profile.Name,
			Email:         email,
			GroupID:       model.GroupCustomer,
			OAuthProvider: &providerName,
		})
	}
	if err != nil {
		return nil, "", err
	}

	if !usr.Active {
		return nil, "", domainErrors.ErrUserInactive
	}

	// a pre-existing local account gains the provider linkage on first login
	if usr.OAuthProvider == nil {
		if err := u.users.SetOAuthProvider(ctx, usr.ID, providerName); err != nil {
			return nil, "", err
		}
		usr.OAuthProvider = &providerName
	}

	token, err := u.tokens.IssueToken(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the authenticated identity from the token.
func (u *AuthUseCase) ParseToken(token string) (*pkgAuth.Identity, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// UpdateProfile changes the user's display name and phone.
func (u *AuthUseCase) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domainErrors.ErrInvalidCredentials
	}
	return u.users.UpdateProfile(ctx, id, name, strings.TrimSpace(phone))
}

// ChangePassword verifies the current password before storing the new hash.
func (u *AuthUseCase) ChangePassword(ctx context.Context, id int64, current, updated string) error {
	if updated == "" {
		return domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.hasher.Compare(usr.PasswordHash, current); err != nil {
		return domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(updated)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, id, hash)
}

// Deactivate disables the account.
func (u *AuthUseCase) Deactivate(ctx context.Context, id int64) error {
	return u.users.SetActive(ctx, id, false)
}
