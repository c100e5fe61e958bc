package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dinehub/internal/models"
)

// Registry owns the reservation collection: it creates records,
// drives the status state machine and serves read queries. It never
// checks availability; that is the booking service's job before the
// write.
type Registry struct {
	store Store
	now   func() time.Time
}

// NewRegistry creates a registry over the given store. The clock is
// injectable for tests; pass nil for time.Now.
func NewRegistry(store Store, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		store: store,
		now:   now,
	}
}

// Create appends a new pending reservation with a fresh id. It does
// not re-validate availability.
func (g *Registry) Create(ctx context.Context, req models.CreateReservationRequest) (models.Reservation, error) {
	r := models.Reservation{
		ID:              uuid.NewString(),
		RestaurantID:    req.RestaurantID,
		TableNumber:     req.TableNumber,
		Time:            req.Time,
		GuestCount:      req.GuestCount,
		Status:          models.ReservationPending,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       g.now().UTC(),
	}

	if err := g.store.Insert(ctx, r); err != nil {
		return models.Reservation{}, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return r, nil
}

// Cancel moves a reservation to cancelled. Terminal reservations are
// rejected with ErrAlreadyTerminal. The check and the write form a
// compare-and-set loop: a concurrent status change between them makes
// the write fail with ErrStatusConflict, and the loop re-reads and
// re-evaluates so a terminal state can never be overwritten.
func (g *Registry) Cancel(ctx context.Context, id string) (models.Reservation, error) {
	for {
		r, err := g.store.Get(ctx, id)
		if err != nil {
			return models.Reservation{}, err
		}
		if r.Status.IsTerminal() {
			return models.Reservation{}, ErrAlreadyTerminal
		}

		err = g.store.UpdateStatus(ctx, id, r.Status, models.ReservationCancelled)
		if errors.Is(err, ErrStatusConflict) {
			continue
		}
		if err != nil {
			return models.Reservation{}, err
		}
		r.Status = models.ReservationCancelled
		return r, nil
	}
}

// TransitionStatus applies one step of the reservation state machine,
// with the same compare-and-set loop as Cancel.
func (g *Registry) TransitionStatus(ctx context.Context, id string, newStatus models.ReservationStatus) (models.Reservation, error) {
	for {
		r, err := g.store.Get(ctx, id)
		if err != nil {
			return models.Reservation{}, err
		}
		if !models.CanTransition(r.Status, newStatus) {
			return models.Reservation{}, ErrInvalidTransition
		}

		err = g.store.UpdateStatus(ctx, id, r.Status, newStatus)
		if errors.Is(err, ErrStatusConflict) {
			continue
		}
		if err != nil {
			return models.Reservation{}, err
		}
		r.Status = newStatus
		return r, nil
	}
}

// Get returns one reservation by id.
func (g *Registry) Get(ctx context.Context, id string) (models.Reservation, error) {
	return g.store.Get(ctx, id)
}

// ByRestaurant lists all reservations of a restaurant, any status.
func (g *Registry) ByRestaurant(ctx context.Context, restaurantID string) ([]models.Reservation, error) {
	return g.store.ListByRestaurant(ctx, restaurantID)
}

// ByTable lists all reservations of one table, any status.
func (g *Registry) ByTable(ctx context.Context, restaurantID string, tableNumber int) ([]models.Reservation, error) {
	return g.store.ListByTable(ctx, restaurantID, tableNumber)
}
