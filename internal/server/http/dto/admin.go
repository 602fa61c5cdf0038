package dto

import "time"

// UpdateOrderStatusRequest moves an order through its lifecycle.
type UpdateOrderStatusRequest struct {
	Status       string `json:"status"`
	Note         string `json:"note"`
	Carrier      string `json:"carrier"`
	TrackingCode string `json:"tracking_code"`
}

// RejectRefundRequest carries the rejection note shown to the customer.
type RejectRefundRequest struct {
	Note string `json:"note"`
}

// PermissionDTO is the per-module rights row of a group.
type PermissionDTO struct {
	Module    string `json:"module"`
	CanView   bool   `json:"can_view"`
	CanCreate bool   `json:"can_create"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
	CanExport bool   `json:"can_export"`
}

// GroupRequest carries employee group fields for create and update.
type GroupRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Permissions []PermissionDTO `json:"permissions"`
}

// GroupResponse is the stored employee group view.
type GroupResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Permissions []PermissionDTO `json:"permissions"`
}

// AssignEmployeeRequest binds a user to an employee group.
type AssignEmployeeRequest struct {
	UserID  int64 `json:"user_id"`
	GroupID int64 `json:"group_id"`
}

// UserResponse is the back-office view of an account.
type UserResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Active          bool      `json:"active"`
	EmployeeGroupID *int64    `json:"employee_group_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AccessLogEntryResponse is one audit-trail row.
type AccessLogEntryResponse struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	Module     string    `json:"module"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
