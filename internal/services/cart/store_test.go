package cart

import (
	"sync"
	"testing"

	"dinehub/internal/models"
)

var (
	dishA = models.Dish{ID: "dish-a", Name: "Margherita", PriceCents: 300, Brand: "brand-x"}
	dishB = models.Dish{ID: "dish-b", Name: "Pad Thai", PriceCents: 150, Brand: "brand-y"}
	dishC = models.Dish{ID: "dish-c", Name: "Calzone", PriceCents: 450, Brand: "brand-x"}
)

func assertBrandInvariant(t *testing.T, s *Store) {
	t.Helper()
	state := s.Snapshot()
	if state.IsEmpty() {
		if state.Brand != "" {
			t.Fatalf("empty cart must have no brand, got %q", state.Brand)
		}
		return
	}
	for id, line := range state.Lines {
		if line.Dish.Brand != state.Brand {
			t.Fatalf("line %s has brand %q, cart brand is %q", id, line.Dish.Brand, state.Brand)
		}
		if line.Quantity < 1 {
			t.Fatalf("line %s has quantity %d, want >= 1", id, line.Quantity)
		}
	}
}

func TestAddItemEmptyCartAdoptsBrand(t *testing.T) {
	s := NewStore()

	result, err := s.AddItem(dishA)
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if result != AddAccepted {
		t.Fatalf("result = %q, want accepted", result)
	}

	state := s.Snapshot()
	if state.Brand != dishA.Brand {
		t.Errorf("brand = %q, want %q", state.Brand, dishA.Brand)
	}
	if state.Lines[dishA.ID].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", state.Lines[dishA.ID].Quantity)
	}
	assertBrandInvariant(t, s)
}

func TestAddItemSameBrandIncrements(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)
	s.AddItem(dishA)

	result, err := s.AddItem(dishC)
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if result != AddAccepted {
		t.Fatalf("result = %q, want accepted", result)
	}

	state := s.Snapshot()
	if got := state.Lines[dishA.ID].Quantity; got != 2 {
		t.Errorf("dishA quantity = %d, want 2", got)
	}
	if got := state.Lines[dishC.ID].Quantity; got != 1 {
		t.Errorf("dishC quantity = %d, want 1", got)
	}
	assertBrandInvariant(t, s)
}

func TestMixedBrandFlow(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)

	result, err := s.AddItem(dishB)
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if result != AddNeedsConfirmation {
		t.Fatalf("result = %q, want needs_confirmation", result)
	}

	// Committed lines untouched while confirmation is pending.
	state := s.Snapshot()
	if len(state.Lines) != 1 || state.Lines[dishA.ID].Quantity != 1 {
		t.Fatalf("cart mutated by pending add: %+v", state.Lines)
	}
	if state.PendingAdd == nil || state.PendingAdd.Dish.ID != dishB.ID {
		t.Fatalf("pending add = %+v, want dishB", state.PendingAdd)
	}

	if err := s.ConfirmPendingAdd(); err != nil {
		t.Fatalf("ConfirmPendingAdd returned error: %v", err)
	}

	state = s.Snapshot()
	if len(state.Lines) != 1 {
		t.Fatalf("lines = %d, want 1 after confirm", len(state.Lines))
	}
	if state.Lines[dishB.ID].Quantity != 1 {
		t.Errorf("dishB quantity = %d, want 1", state.Lines[dishB.ID].Quantity)
	}
	if state.Brand != dishB.Brand {
		t.Errorf("brand = %q, want %q", state.Brand, dishB.Brand)
	}
	if state.PendingAdd != nil {
		t.Error("pending add must be cleared after confirm")
	}
	assertBrandInvariant(t, s)
}

func TestCancelPendingAddKeepsCommittedLines(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)
	s.AddItem(dishB)

	s.CancelPendingAdd()

	state := s.Snapshot()
	if state.PendingAdd != nil {
		t.Error("pending add must be cleared after cancel")
	}
	if len(state.Lines) != 1 || state.Lines[dishA.ID].Quantity != 1 {
		t.Errorf("committed lines changed by cancel: %+v", state.Lines)
	}
	assertBrandInvariant(t, s)
}

func TestSecondMismatchedAddOverwritesPending(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)

	other := models.Dish{ID: "dish-z", Name: "Ramen", PriceCents: 900, Brand: "brand-z"}
	s.AddItem(dishB)
	s.AddItem(other)

	state := s.Snapshot()
	if state.PendingAdd == nil || state.PendingAdd.Dish.ID != other.ID {
		t.Fatalf("pending add = %+v, want last requested dish", state.PendingAdd)
	}

	if err := s.ConfirmPendingAdd(); err != nil {
		t.Fatalf("ConfirmPendingAdd returned error: %v", err)
	}
	state = s.Snapshot()
	if _, ok := state.Lines[other.ID]; !ok {
		t.Errorf("confirm must commit the last pending dish, got %+v", state.Lines)
	}
}

func TestConfirmWithoutPendingAdd(t *testing.T) {
	s := NewStore()
	if err := s.ConfirmPendingAdd(); err != ErrNoPendingAdd {
		t.Fatalf("ConfirmPendingAdd error = %v, want ErrNoPendingAdd", err)
	}
}

func TestUpdateQuantityClampsAtZero(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)
	s.AddItem(dishA)

	if err := s.UpdateQuantity(dishA.ID, -1); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if got := s.Snapshot().Lines[dishA.ID].Quantity; got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}

	// Dropping below zero removes the line and resets the brand.
	if err := s.UpdateQuantity(dishA.ID, -5); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}

	state := s.Snapshot()
	if !state.IsEmpty() {
		t.Errorf("cart must be empty after quantity reached zero, got %+v", state.Lines)
	}
	if state.Brand != "" {
		t.Errorf("brand = %q, want empty after last line removed", state.Brand)
	}
	assertBrandInvariant(t, s)
}

func TestUpdateQuantityAcceptsArbitraryDelta(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)

	if err := s.UpdateQuantity(dishA.ID, 7); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if got := s.Snapshot().Lines[dishA.ID].Quantity; got != 8 {
		t.Errorf("quantity = %d, want 8", got)
	}
}

func TestUpdateQuantityUnknownDish(t *testing.T) {
	s := NewStore()
	if err := s.UpdateQuantity("missing", 1); err != ErrNotInCart {
		t.Fatalf("UpdateQuantity error = %v, want ErrNotInCart", err)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)
	before := s.Snapshot()

	s.RemoveItem("never-added")

	after := s.Snapshot()
	if len(after.Lines) != len(before.Lines) || after.Brand != before.Brand {
		t.Errorf("RemoveItem on absent id changed state: before %+v, after %+v", before, after)
	}

	s.RemoveItem(dishA.ID)
	s.RemoveItem(dishA.ID)
	if !s.Snapshot().IsEmpty() {
		t.Error("cart must be empty after removal")
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)
	s.AddItem(dishB)

	s.Clear()

	state := s.Snapshot()
	if !state.IsEmpty() || state.Brand != "" || state.PendingAdd != nil {
		t.Errorf("Clear left residual state: %+v", state)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewStore()
	s.AddItem(dishA)

	state := s.Snapshot()
	state.Lines["injected"] = models.CartLine{Dish: dishB, Quantity: 3}

	if _, ok := s.Snapshot().Lines["injected"]; ok {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestRestoreDropsForeignBrandLines(t *testing.T) {
	s := NewStore()
	s.Restore(models.CartState{
		Lines: map[string]models.CartLine{
			dishA.ID: {Dish: dishA, Quantity: 2},
			dishC.ID: {Dish: dishC, Quantity: 1},
		},
	})
	assertBrandInvariant(t, s)
	if got := s.Snapshot().TotalQuantity(); got != 3 {
		t.Errorf("total quantity = %d, want 3", got)
	}
}

func TestConcurrentAddsPreserveInvariant(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.AddItem(dishA)
			} else {
				s.AddItem(dishB)
			}
		}(i)
	}
	wg.Wait()

	assertBrandInvariant(t, s)
}
