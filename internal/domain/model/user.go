package model

import "time"

// Group identifies the coarse account kind.
type Group int64

const (
	GroupCustomer Group = 1
	GroupAdmin    Group = 2
	GroupEmployee Group = 3
)

// User represents a store account: customer, admin or back-office employee.
type User struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	PasswordHash    string
	GroupID         Group
	EmployeeGroupID *int64
	OAuthProvider   *string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin reports whether the account belongs to the admin group.
func (u *User) IsAdmin() bool {
	return u.GroupID == GroupAdmin
}
