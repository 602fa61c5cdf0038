package repository

import (
	"context"

	"github.com/memoriza/memoriza/internal/domain/model"
)

// UserRepository describes persistence operations for store accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phone string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetOAuthProvider(ctx context.Context, id int64, provider string) error
	SetEmployeeGroup(ctx context.Context, id int64, groupID *int64) error
	ListByGroup(ctx context.Context, group model.Group, limit, offset int) ([]model.User, error)
}
