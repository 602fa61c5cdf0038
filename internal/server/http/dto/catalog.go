package dto

// ProductResponse is the public product view.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	WeightGrams int     `json:"weight_grams"`
	CategoryID  int64   `json:"category_id"`
	ImageURL    string  `json:"image_url,omitempty"`
	Active      bool    `json:"active"`
}

// ProductRequest carries product fields for create and update.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	WeightGrams int     `json:"weight_grams"`
	CategoryID  int64   `json:"category_id"`
	ImageURL    string  `json:"image_url"`
}

// CategoryResponse is the public category view.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryRequest carries category fields for create and update.
type CategoryRequest struct {
	Name string `json:"name"`
}
