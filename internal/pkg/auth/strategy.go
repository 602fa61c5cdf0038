package auth

import (
	"time"

	"github.com/memoriza/memoriza/internal/domain/model"
)

// Identity is the authenticated principal carried by a verified token.
type Identity struct {
	UserID          int64
	GroupID         model.Group
	Admin           bool
	EmployeeGroupID *int64
}

type Strategy interface {
	IssueToken(user *model.User) (string, error)
	ParseToken(token string) (*Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
