package model

// ShippingQuote is the price and estimate for delivering a cart.
type ShippingQuote struct {
	Amount       float64
	Carrier      string
	DeliveryDays int
}
