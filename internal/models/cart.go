package models

// CartLine is one dish entry in a cart. Quantity is always >= 1; a
// quantity reaching zero removes the line instead.
type CartLine struct {
	Dish     Dish `json:"dish"`
	Quantity int  `json:"quantity"`
}

// PendingAdd holds a cross-brand add awaiting explicit user confirmation.
// It never touches committed lines until confirmed.
type PendingAdd struct {
	Dish Dish `json:"dish"`
}

// CartState is a read-only view of a cart. All committed lines share
// the cart's brand, or the cart is empty and the brand is unset.
type CartState struct {
	Brand      Brand               `json:"brand,omitempty"`
	Lines      map[string]CartLine `json:"lines"`
	PendingAdd *PendingAdd         `json:"pending_add,omitempty"`
}

// IsEmpty reports whether the cart holds no committed lines.
func (s CartState) IsEmpty() bool {
	return len(s.Lines) == 0
}

// TotalQuantity sums the quantities of all committed lines.
func (s CartState) TotalQuantity() int {
	n := 0
	for _, line := range s.Lines {
		n += line.Quantity
	}
	return n
}
