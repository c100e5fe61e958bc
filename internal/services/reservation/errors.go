package reservation

import "errors"

var (
	// ErrTableUnavailable means the requested slot overlaps an active
	// reservation on the same table.
	ErrTableUnavailable = errors.New("table is not available for the requested time")

	// ErrRestaurantClosed means the requested time falls outside the
	// restaurant's working hours.
	ErrRestaurantClosed = errors.New("restaurant is closed at the requested time")

	// ErrUnknownTable means the restaurant has no table with the
	// requested number.
	ErrUnknownTable = errors.New("table not found in restaurant inventory")

	// ErrReservationNotFound means no reservation exists for the id.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAlreadyTerminal means the reservation is completed or
	// cancelled and cannot change status again.
	ErrAlreadyTerminal = errors.New("reservation is already in a terminal state")

	// ErrInvalidTransition means the requested status change is not
	// allowed by the reservation state machine.
	ErrInvalidTransition = errors.New("invalid reservation status transition")

	// ErrStatusConflict means a status write lost a race: the stored
	// status no longer matches the one the caller observed. The registry
	// re-reads and re-evaluates on this error.
	ErrStatusConflict = errors.New("reservation status changed concurrently")
)
