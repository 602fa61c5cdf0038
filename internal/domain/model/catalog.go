package model

import "time"

// Category groups products in the storefront.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// Product is a catalog entry. WeightGrams feeds shipping quotes.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Slug        string
	Description string
	Price       float64
	Stock       int
	WeightGrams int
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	CategoryID *int64
	Search     string
	OnlyActive bool
	Limit      int
	Offset     int
}
