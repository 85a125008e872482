package models

// CartItem is one line of the cart. Name is unique within a cart.
type CartItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity in PKR.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}
