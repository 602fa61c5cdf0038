package model

import "time"

// CartItem is a single line in a cart. UnitPrice is snapshotted at the
// moment the product is added.
type CartItem struct {
	ID          int64
	CartID      int64
	ProductID   int64
	ProductName string
	UnitPrice   float64
	Quantity    int
	WeightGrams int
}

// Subtotal returns the line total.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the single active cart of a user.
type Cart struct {
	ID        int64
	UserID    int64
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal sums all line subtotals.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Subtotal()
	}
	return sum
}

// WeightGrams returns the total cart weight.
func (c *Cart) WeightGrams() int {
	var grams int
	for _, item := range c.Items {
		grams += item.WeightGrams * item.Quantity
	}
	return grams
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
