package model

import "time"

// Product categories. The set is fixed; catalog validation rejects anything
// else.
const (
	CategoryBread    = "bread"
	CategoryPastry   = "pastry"
	CategoryCake     = "cake"
	CategoryBeverage = "beverage"
)

// Categories lists every valid product category.
var Categories = []string{CategoryBread, CategoryPastry, CategoryCake, CategoryBeverage}

// ValidCategory reports whether c is one of the four fixed labels.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product is a purchasable catalog item persisted under the `products` key.
// The list is kept newest-first.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
