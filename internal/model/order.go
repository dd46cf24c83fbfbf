package model

import "time"

// StatusConfirmed is the only order status the storefront produces.
const StatusConfirmed = "confirmed"

// Order is the immutable snapshot checkout takes of the cart. Orders are
// appended to the list under the `orders` key and never mutated afterwards.
type Order struct {
	OrderNumber     string     `json:"orderNumber"`
	Items           []CartLine `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	DiscountPercent int        `json:"discount"`
	PromoCode       string     `json:"promoCode,omitempty"`
	Total           float64    `json:"total"`
	Date            time.Time  `json:"date"`
	Status          string     `json:"status"`
}
