package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
	pkgAuth "github.com/memoriza/memoriza/internal/pkg/auth"
)

// StaffUseCase covers employee groups, permissions and the access log.
type StaffUseCase struct {
	groups repository.GroupRepository
	users  repository.UserRepository
	logs   repository.AccessLogRepository
}

// NewStaffUseCase constructs StaffUseCase.
func NewStaffUseCase(groups repository.GroupRepository, users repository.UserRepository, logs repository.AccessLogRepository) *StaffUseCase {
	return &StaffUseCase{groups: groups, users: users, logs: logs}
}

func validateGroup(group *model.EmployeeGroup) error {
	if strings.TrimSpace(group.Name) == "" {
		return domainErrors.ErrInvalidInput
	}
	for _, p := range group.Permissions {
		if p.Module == "" {
			return domainErrors.ErrInvalidInput
		}
	}
	return nil
}

func (u *StaffUseCase) CreateGroup(ctx context.Context, group *model.EmployeeGroup) (*model.EmployeeGroup, error) {
	if err := validateGroup(group); err != nil {
		return nil, err
	}
	return u.groups.Create(ctx, group)
}

func (u *StaffUseCase) UpdateGroup(ctx context.Context, group *model.EmployeeGroup) error {
	if err := validateGroup(group); err != nil {
		return err
	}
	return u.groups.Update(ctx, group)
}

func (u *StaffUseCase) DeleteGroup(ctx context.Context, id int64) error {
	return u.groups.Delete(ctx, id)
}

func (u *StaffUseCase) GetGroup(ctx context.Context, id int64) (*model.EmployeeGroup, error) {
	return u.groups.GetByID(ctx, id)
}

func (u *StaffUseCase) ListGroups(ctx context.Context) ([]model.EmployeeGroup, error) {
	return u.groups.List(ctx)
}

// AssignEmployee promotes a user into the employee role and binds them to a
// permission group.
func (u *StaffUseCase) AssignEmployee(ctx context.Context, userID, groupID int64) error {
	if _, err := u.groups.GetByID(ctx, groupID); err != nil {
		return err
	}
	return u.users.SetEmployeeGroup(ctx, userID, &groupID)
}

// RevokeEmployee demotes an employee back to a plain customer.
func (u *StaffUseCase) RevokeEmployee(ctx context.Context, userID int64) error {
	return u.users.SetEmployeeGroup(ctx, userID, nil)
}

func (u *StaffUseCase) ListEmployees(ctx context.Context, limit, offset int) ([]model.User, error) {
	return u.users.ListByGroup(ctx, model.GroupEmployee, normalizeLimit(limit), offset)
}

func (u *StaffUseCase) ListCustomers(ctx context.Context, limit, offset int) ([]model.User, error) {
	return u.users.ListByGroup(ctx, model.GroupCustomer, normalizeLimit(limit), offset)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

// Allowed reports whether the identity may perform action on module.
// Admins bypass the permission matrix entirely.
func (u *StaffUseCase) Allowed(ctx context.Context, identity *pkgAuth.Identity, module model.BackOfficeModule, action model.PermissionAction) (bool, error) {
	if identity.Admin {
		return true, nil
	}
	if identity.GroupID != model.GroupEmployee || identity.EmployeeGroupID == nil {
		return false, nil
	}
	group, err := u.groups.GetByID(ctx, *identity.EmployeeGroupID)
	if err != nil {
		return false, err
	}
	return group.Allows(module, action), nil
}

// RecordAccess appends one entry to the back-office audit trail.
func (u *StaffUseCase) RecordAccess(ctx context.Context, entry *model.AccessLogEntry) error {
	return u.logs.Append(ctx, entry)
}

func (u *StaffUseCase) ListAccessLog(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLogEntry, error) {
	return u.logs.List(ctx, filter)
}
