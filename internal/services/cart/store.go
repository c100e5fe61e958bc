package cart

import (
	"sync"

	"dinehub/internal/models"
)

// AddResult tells the caller how an add was handled.
type AddResult string

const (
	// AddAccepted means the dish was committed to the cart.
	AddAccepted AddResult = "accepted"

	// AddNeedsConfirmation means the dish belongs to another brand and
	// is parked as a pending add until the user confirms or cancels.
	// Committed lines are untouched.
	AddNeedsConfirmation AddResult = "needs_confirmation"
)

// Store owns the single active cart of one session. All mutations
// serialize on an internal mutex so the brand invariant holds under
// concurrent adds.
//
// Invariant after every operation: either the cart is empty, or every
// committed line's dish brand equals the cart brand; no line has a
// quantity below 1.
type Store struct {
	mu      sync.Mutex
	brand   models.Brand
	lines   map[string]models.CartLine
	pending *models.PendingAdd
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{
		lines: make(map[string]models.CartLine),
	}
}

// AddItem adds one unit of a dish. An empty cart adopts the dish's
// brand. A matching brand increments the line (creating it at quantity
// 1). A mismatched brand does not touch committed state: the dish is
// stored as the pending add and AddNeedsConfirmation is returned. A
// second mismatched add before resolution overwrites the previous
// pending add, last request wins.
func (s *Store) AddItem(dish models.Dish) (AddResult, error) {
	if dish.ID == "" {
		return "", ErrEmptyDishID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		s.brand = dish.Brand
		s.lines[dish.ID] = models.CartLine{Dish: dish, Quantity: 1}
		s.pending = nil
		return AddAccepted, nil
	}

	if dish.Brand == s.brand {
		line, ok := s.lines[dish.ID]
		if !ok {
			line = models.CartLine{Dish: dish}
		}
		line.Quantity++
		s.lines[dish.ID] = line
		return AddAccepted, nil
	}

	s.pending = &models.PendingAdd{Dish: dish}
	return AddNeedsConfirmation, nil
}

// ConfirmPendingAdd discards all committed lines, switches the cart to
// the pending dish's brand and adds it at quantity 1.
func (s *Store) ConfirmPendingAdd() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return ErrNoPendingAdd
	}

	dish := s.pending.Dish
	s.lines = map[string]models.CartLine{
		dish.ID: {Dish: dish, Quantity: 1},
	}
	s.brand = dish.Brand
	s.pending = nil
	return nil
}

// CancelPendingAdd drops the pending add without touching committed
// lines. Calling it with no pending add is a no-op.
func (s *Store) CancelPendingAdd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
}

// UpdateQuantity shifts a line's quantity by delta. The result is
// clamped at zero; zero removes the line, and removing the last line
// resets the cart brand.
func (s *Store) UpdateQuantity(dishID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[dishID]
	if !ok {
		return ErrNotInCart
	}

	line.Quantity += delta
	if line.Quantity <= 0 {
		s.removeLocked(dishID)
		return nil
	}

	s.lines[dishID] = line
	return nil
}

// RemoveItem removes a line unconditionally. Absent ids are ignored.
func (s *Store) RemoveItem(dishID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(dishID)
}

func (s *Store) removeLocked(dishID string) {
	delete(s.lines, dishID)
	if len(s.lines) == 0 {
		s.brand = ""
	}
}

// Clear empties lines, pending add and brand. Called after checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]models.CartLine)
	s.brand = ""
	s.pending = nil
}

// Restore replaces the committed lines with a previously saved state.
// Used when loading a draft; the draft's own invariant is trusted only
// after re-checking that all lines share one brand.
func (s *Store) Restore(state models.CartState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]models.CartLine, len(state.Lines))
	s.brand = ""
	s.pending = nil

	for id, line := range state.Lines {
		if line.Quantity < 1 {
			continue
		}
		if s.brand == "" {
			s.brand = line.Dish.Brand
		}
		if line.Dish.Brand != s.brand {
			continue
		}
		s.lines[id] = line
	}
	if len(s.lines) == 0 {
		s.brand = ""
	}
}

// Snapshot returns a deep copy of the cart state for pricing and
// display.
func (s *Store) Snapshot() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make(map[string]models.CartLine, len(s.lines))
	for id, line := range s.lines {
		lines[id] = line
	}

	state := models.CartState{
		Brand: s.brand,
		Lines: lines,
	}
	if s.pending != nil {
		p := *s.pending
		state.PendingAdd = &p
	}
	return state
}
