package models

import (
	"fmt"
	"time"
)

// ReservationEventMessage is published to the reservations topic
// exchange whenever a reservation is created or changes status.
type ReservationEventMessage struct {
	ReservationID string    `json:"reservation_id"`
	RestaurantID  string    `json:"restaurant_id"`
	TableNumber   int       `json:"table_number"`
	Time          time.Time `json:"time"`
	GuestCount    int       `json:"guest_count"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// StatusUpdateMessage is fanned out to notification subscribers when a
// reservation transitions between statuses.
type StatusUpdateMessage struct {
	ReservationID string    `json:"reservation_id"`
	RestaurantID  string    `json:"restaurant_id"`
	TableNumber   int       `json:"table_number"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewReservationEventMessage builds the topic message for a reservation.
func NewReservationEventMessage(r Reservation) *ReservationEventMessage {
	return &ReservationEventMessage{
		ReservationID: r.ID,
		RestaurantID:  r.RestaurantID,
		TableNumber:   r.TableNumber,
		Time:          r.Time,
		GuestCount:    r.GuestCount,
		Status:        string(r.Status),
		Timestamp:     time.Now().UTC(),
	}
}

// NewStatusUpdateMessage builds the fanout message for a status change.
func NewStatusUpdateMessage(r Reservation, oldStatus ReservationStatus) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		ReservationID: r.ID,
		RestaurantID:  r.RestaurantID,
		TableNumber:   r.TableNumber,
		OldStatus:     string(oldStatus),
		NewStatus:     string(r.Status),
		Timestamp:     time.Now().UTC(),
	}
}

// ReservationRoutingKey generates the topic routing key for a
// reservation event, e.g. "reservation.created.r_42".
func ReservationRoutingKey(event, restaurantID string) string {
	return fmt.Sprintf("reservation.%s.%s", event, restaurantID)
}
