package cart

import "errors"

var (
	// ErrNoPendingAdd is returned when confirming while no cross-brand
	// add is awaiting confirmation.
	ErrNoPendingAdd = errors.New("no pending add to confirm")

	// ErrNotInCart is returned when updating the quantity of a dish the
	// cart does not hold.
	ErrNotInCart = errors.New("dish not in cart")

	// ErrNegativeTip is returned by the pricing calculator for tips
	// below zero.
	ErrNegativeTip = errors.New("tip must not be negative")

	// ErrEmptyDishID is returned for adds with no dish identity.
	ErrEmptyDishID = errors.New("dish id is required")

	// ErrDraftNotFound is returned when loading a cart draft that was
	// never saved or has expired.
	ErrDraftNotFound = errors.New("cart draft not found")
)
