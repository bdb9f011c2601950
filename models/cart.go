package models

// CartItem is a snapshot of a product taken when it was added to the cart.
// Later catalog edits do not change items already in a cart.
type CartItem struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category"`
}

func (i CartItem) LineTotal() int {
	return i.Price * i.Quantity
}

type Badge struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

type CartView struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total int        `json:"total"`
	Badge Badge      `json:"badge"`
}
