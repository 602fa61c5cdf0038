package model

import "time"

// Address is a customer delivery address.
type Address struct {
	ID         int64
	UserID     int64
	Label      string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	ZipCode    string
	Default    bool
	CreatedAt  time.Time
}

// AddressSnapshot is the copy of address fields frozen into an order at
// checkout time, so later address edits do not rewrite order history.
type AddressSnapshot struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	ZipCode    string
}

// SnapshotAddress copies the mutable address into its frozen form.
func SnapshotAddress(a *Address) AddressSnapshot {
	return AddressSnapshot{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		ZipCode:    a.ZipCode,
	}
}
