package model

// MaxLineQuantity bounds how many units of one product a cart line may hold.
const MaxLineQuantity = 10

// CartLine is one product entry in the cart, persisted under the `cart` key
// as an ordered sequence (insertion order is display order). Name, price,
// category and image are copied from the product at add time: later catalog
// edits never change what an existing line costs.
type CartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}
