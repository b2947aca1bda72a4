package models

// CartItem is one line of the cookie-backed cart. Field names follow the
// cookie contract shared with the front-end, so tags are camelCase here.
type CartItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
