package repository

import (
	"context"

	"github.com/memoriza/memoriza/internal/domain/model"
)

// GroupRepository describes persistence operations for employee groups.
type GroupRepository interface {
	Create(ctx context.Context, group *model.EmployeeGroup) (*model.EmployeeGroup, error)
	Update(ctx context.Context, group *model.EmployeeGroup) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.EmployeeGroup, error)
	List(ctx context.Context) ([]model.EmployeeGroup, error)
}

// AccessLogRepository is the append-only back-office audit trail.
type AccessLogRepository interface {
	Append(ctx context.Context, entry *model.AccessLogEntry) error
	List(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLogEntry, error)
}
