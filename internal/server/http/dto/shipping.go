package dto

// ShippingQuoteRequest asks for a freight estimate.
type ShippingQuoteRequest struct {
	ZipCode     string  `json:"zip_code"`
	WeightGrams int     `json:"weight_grams"`
	Subtotal    float64 `json:"subtotal"`
}

// ShippingQuoteResponse is the freight estimate.
type ShippingQuoteResponse struct {
	Amount       float64 `json:"amount"`
	Carrier      string  `json:"carrier"`
	DeliveryDays int     `json:"delivery_days"`
}
