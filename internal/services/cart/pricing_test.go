package cart

import (
	"testing"

	"dinehub/internal/models"
)

func TestComputeTotal(t *testing.T) {
	lines := map[string]models.CartLine{
		"dish-a": {Dish: models.Dish{ID: "dish-a", PriceCents: 300, Brand: "brand-x"}, Quantity: 2},
		"dish-b": {Dish: models.Dish{ID: "dish-b", PriceCents: 150, Brand: "brand-x"}, Quantity: 1},
	}

	totals, err := ComputeTotal(lines, 200, 50)
	if err != nil {
		t.Fatalf("ComputeTotal returned error: %v", err)
	}

	if totals.SubtotalCents != 750 {
		t.Errorf("subtotal = %d, want 750", totals.SubtotalCents)
	}
	if totals.DeliveryFeeCents != 200 {
		t.Errorf("delivery fee = %d, want 200", totals.DeliveryFeeCents)
	}
	if totals.TipCents != 50 {
		t.Errorf("tip = %d, want 50", totals.TipCents)
	}
	if totals.TotalCents != 1000 {
		t.Errorf("total = %d, want 1000", totals.TotalCents)
	}
}

func TestComputeTotalEmptyCart(t *testing.T) {
	totals, err := ComputeTotal(nil, 200, 0)
	if err != nil {
		t.Fatalf("ComputeTotal returned error: %v", err)
	}
	if totals.SubtotalCents != 0 || totals.TotalCents != 200 {
		t.Errorf("totals = %+v, want subtotal 0 and total 200", totals)
	}
}

func TestComputeTotalRejectsNegativeTip(t *testing.T) {
	if _, err := ComputeTotal(nil, 200, -1); err != ErrNegativeTip {
		t.Fatalf("ComputeTotal error = %v, want ErrNegativeTip", err)
	}
}
