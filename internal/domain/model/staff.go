package model

import "time"

// BackOfficeModule names an admin area guarded by group permissions.
type BackOfficeModule string

const (
	ModuleProducts   BackOfficeModule = "products"
	ModuleCategories BackOfficeModule = "categories"
	ModuleOrders     BackOfficeModule = "orders"
	ModuleCustomers  BackOfficeModule = "customers"
	ModuleEmployees  BackOfficeModule = "employees"
	ModuleGroups     BackOfficeModule = "groups"
	ModuleLogs       BackOfficeModule = "logs"
)

// PermissionAction is a right an employee group may hold on a module.
type PermissionAction string

const (
	ActionView   PermissionAction = "view"
	ActionCreate PermissionAction = "create"
	ActionEdit   PermissionAction = "edit"
	ActionDelete PermissionAction = "delete"
	ActionExport PermissionAction = "export"
)

// Permission is the set of rights a group holds over one module.
type Permission struct {
	Module    BackOfficeModule
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
	CanExport bool
}

// Allows reports whether the permission grants the action.
func (p Permission) Allows(action PermissionAction) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	case ActionExport:
		return p.CanExport
	}
	return false
}

// EmployeeGroup is a named permission bundle for back-office staff.
type EmployeeGroup struct {
	ID          int64
	Name        string
	Description string
	Permissions []Permission
	CreatedAt   time.Time
}

// Allows reports whether the group grants the action on the module.
func (g *EmployeeGroup) Allows(module BackOfficeModule, action PermissionAction) bool {
	for _, p := range g.Permissions {
		if p.Module == module {
			return p.Allows(action)
		}
	}
	return false
}

// AccessLogEntry records one back-office action for audit.
type AccessLogEntry struct {
	ID         int64
	EmployeeID int64
	Module     BackOfficeModule
	Action     string
	Detail     string
	CreatedAt  time.Time
}

// AccessLogFilter narrows audit listings.
type AccessLogFilter struct {
	EmployeeID *int64
	Module     *BackOfficeModule
	Limit      int
	Offset     int
}
