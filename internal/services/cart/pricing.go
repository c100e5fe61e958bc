package cart

import "dinehub/internal/models"

// Totals is the result of pricing a cart. All amounts are integer
// minor currency units.
type Totals struct {
	SubtotalCents    int `json:"subtotal_cents"`
	DeliveryFeeCents int `json:"delivery_fee_cents"`
	TipCents         int `json:"tip_cents"`
	TotalCents       int `json:"total_cents"`
}

// ComputeTotal derives the order totals from cart lines, a flat
// configured delivery fee and a tip. Pure function: no state, no side
// effects. The only rejected input is a negative tip.
func ComputeTotal(lines map[string]models.CartLine, deliveryFeeCents, tipCents int) (Totals, error) {
	if tipCents < 0 {
		return Totals{}, ErrNegativeTip
	}

	subtotal := 0
	for _, line := range lines {
		subtotal += line.Dish.PriceCents * line.Quantity
	}

	return Totals{
		SubtotalCents:    subtotal,
		DeliveryFeeCents: deliveryFeeCents,
		TipCents:         tipCents,
		TotalCents:       subtotal + deliveryFeeCents + tipCents,
	}, nil
}
