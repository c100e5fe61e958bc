package models

import (
	"fmt"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// validNext encodes the reservation state machine:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
// Terminal states have no outgoing transitions.
var validNext = map[ReservationStatus]map[ReservationStatus]bool{
	ReservationPending:   {ReservationConfirmed: true, ReservationCancelled: true},
	ReservationConfirmed: {ReservationCompleted: true, ReservationCancelled: true},
	ReservationCompleted: {},
	ReservationCancelled: {},
}

// CanTransition reports whether the state machine allows moving from
// one status to another.
func CanTransition(from, to ReservationStatus) bool {
	return validNext[from][to]
}

// IsTerminal reports whether a status has no outgoing transitions.
func (s ReservationStatus) IsTerminal() bool {
	return len(validNext[s]) == 0
}

// IsActive reports whether a reservation in this status still occupies
// its table for availability purposes.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Reservation is a booking of one table for a service window starting
// at Time. Records are never deleted; cancellation is a status change.
type Reservation struct {
	ID              string            `json:"id"`
	RestaurantID    string            `json:"restaurant_id"`
	TableNumber     int               `json:"table_number"`
	Time            time.Time         `json:"time"`
	GuestCount      int               `json:"guest_count"`
	Status          ReservationStatus `json:"status"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Window returns the half-open occupancy interval [start, end) of the
// reservation for the given service duration.
func (r Reservation) Window(serviceDuration time.Duration) (start, end time.Time) {
	return r.Time, r.Time.Add(serviceDuration)
}

// CreateReservationRequest is the payload for creating a reservation.
type CreateReservationRequest struct {
	RestaurantID    string    `json:"restaurant_id"`
	TableNumber     int       `json:"table_number"`
	Time            time.Time `json:"time"`
	GuestCount      int       `json:"guest_count"`
	SpecialRequests string    `json:"special_requests,omitempty"`
}

// Validate checks the request fields before any booking logic runs.
func (req *CreateReservationRequest) Validate() error {
	if req.RestaurantID == "" {
		return fmt.Errorf("restaurant_id is required")
	}
	if req.TableNumber < 1 {
		return fmt.Errorf("table_number must be a positive table number")
	}
	if req.Time.IsZero() {
		return fmt.Errorf("time is required")
	}
	if req.GuestCount < 1 {
		return fmt.Errorf("guest_count must be at least 1")
	}
	if len(req.SpecialRequests) > 500 {
		return fmt.Errorf("special_requests must not exceed 500 characters")
	}
	return nil
}
