package reservation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dinehub/internal/models"
)

// AvailabilityEngine answers whether a table is free for a requested
// service window. It reasons about table occupancy only; business
// hours are the booking service's concern.
type AvailabilityEngine struct {
	store           Store
	serviceDuration time.Duration
}

// NewAvailabilityEngine creates an engine reading reservations from
// the given store. serviceDuration is the fixed span one reservation
// occupies a table.
func NewAvailabilityEngine(store Store, serviceDuration time.Duration) *AvailabilityEngine {
	return &AvailabilityEngine{
		store:           store,
		serviceDuration: serviceDuration,
	}
}

// IsTableAvailable reports whether the half-open window
// [at, at+serviceDuration) is free of active reservations on the
// table. Cancelled and completed reservations never block.
func (e *AvailabilityEngine) IsTableAvailable(ctx context.Context, restaurant models.Restaurant, tableNumber int, at time.Time) (bool, error) {
	existing, err := e.store.ListByTable(ctx, restaurant.ID, tableNumber)
	if err != nil {
		return false, fmt.Errorf("failed to list reservations for table %d: %w", tableNumber, err)
	}

	requestedStart := at
	requestedEnd := at.Add(e.serviceDuration)

	for _, r := range existing {
		if !r.Status.IsActive() {
			continue
		}
		start, end := r.Window(e.serviceDuration)
		// Half-open overlap: touching windows do not conflict.
		if start.Before(requestedEnd) && requestedStart.Before(end) {
			return false, nil
		}
	}
	return true, nil
}

// AvailableTables returns the restaurant's tables that seat at least
// guestCount and are free at the requested time, ordered by ascending
// table number so results are stable for callers and tests.
func (e *AvailabilityEngine) AvailableTables(ctx context.Context, restaurant models.Restaurant, guestCount int, at time.Time) ([]models.Table, error) {
	var out []models.Table
	for _, table := range restaurant.Tables {
		if table.Capacity < guestCount {
			continue
		}
		free, err := e.IsTableAvailable(ctx, restaurant, table.Number, at)
		if err != nil {
			return nil, err
		}
		if free {
			out = append(out, table)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}
