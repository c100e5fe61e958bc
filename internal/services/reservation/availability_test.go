package reservation

import (
	"context"
	"testing"
	"time"

	"dinehub/internal/models"
)

const serviceDuration = 2 * time.Hour

func testRestaurant() models.Restaurant {
	return models.Restaurant{
		ID:    "rest-1",
		Name:  "Trattoria Nord",
		Brand: "brand-x",
		WorkingHours: models.WorkingHours{
			OpenMinute:  10 * 60,
			CloseMinute: 23 * 60,
		},
		Tables: []models.Table{
			{Number: 1, Capacity: 2},
			{Number: 3, Capacity: 6},
			{Number: 5, Capacity: 4},
			{Number: 2, Capacity: 4},
		},
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 12, hour, minute, 0, 0, time.UTC)
}

func seedReservation(t *testing.T, store Store, tableNumber int, start time.Time, status models.ReservationStatus) models.Reservation {
	t.Helper()
	r := models.Reservation{
		ID:           "seed-" + start.Format("1504") + "-" + string(status),
		RestaurantID: "rest-1",
		TableNumber:  tableNumber,
		Time:         start,
		GuestCount:   2,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.Insert(context.Background(), r); err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	return r
}

func TestIsTableAvailable(t *testing.T) {
	store := NewMemoryStore()
	engine := NewAvailabilityEngine(store, serviceDuration)
	restaurant := testRestaurant()

	// Confirmed reservation occupies table 5 for [19:00, 21:00).
	seedReservation(t, store, 5, at(19, 0), models.ReservationConfirmed)

	tests := []struct {
		name  string
		table int
		time  time.Time
		want  bool
	}{
		{"overlapping request rejected", 5, at(20, 0), false},
		{"exact same start rejected", 5, at(19, 0), false},
		{"request ending inside window rejected", 5, at(18, 30), false},
		{"adjacent slot after is free", 5, at(21, 0), true},
		{"adjacent slot before is free", 5, at(17, 0), true},
		{"other table unaffected", 3, at(20, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.IsTableAvailable(context.Background(), restaurant, tt.table, tt.time)
			if err != nil {
				t.Fatalf("IsTableAvailable returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsTableAvailable(table %d, %s) = %v, want %v", tt.table, tt.time.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestCancelledAndCompletedNeverBlock(t *testing.T) {
	store := NewMemoryStore()
	engine := NewAvailabilityEngine(store, serviceDuration)
	restaurant := testRestaurant()

	seedReservation(t, store, 5, at(19, 0), models.ReservationCancelled)
	seedReservation(t, store, 5, at(19, 30), models.ReservationCompleted)

	free, err := engine.IsTableAvailable(context.Background(), restaurant, 5, at(20, 0))
	if err != nil {
		t.Fatalf("IsTableAvailable returned error: %v", err)
	}
	if !free {
		t.Error("terminal reservations must not block the table")
	}
}

func TestCancellationFreesTheTable(t *testing.T) {
	store := NewMemoryStore()
	engine := NewAvailabilityEngine(store, serviceDuration)
	registry := NewRegistry(store, nil)
	restaurant := testRestaurant()

	r := seedReservation(t, store, 5, at(19, 0), models.ReservationConfirmed)

	free, err := engine.IsTableAvailable(context.Background(), restaurant, 5, at(20, 0))
	if err != nil {
		t.Fatalf("IsTableAvailable returned error: %v", err)
	}
	if free {
		t.Fatal("table must be blocked before cancellation")
	}

	if _, err := registry.Cancel(context.Background(), r.ID); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	free, err = engine.IsTableAvailable(context.Background(), restaurant, 5, at(20, 0))
	if err != nil {
		t.Fatalf("IsTableAvailable returned error: %v", err)
	}
	if !free {
		t.Error("cancelled reservation must free the table")
	}
}

func TestAvailableTables(t *testing.T) {
	store := NewMemoryStore()
	engine := NewAvailabilityEngine(store, serviceDuration)
	restaurant := testRestaurant()

	// Table 3 is booked at the requested time.
	seedReservation(t, store, 3, at(19, 0), models.ReservationPending)

	tables, err := engine.AvailableTables(context.Background(), restaurant, 4, at(19, 0))
	if err != nil {
		t.Fatalf("AvailableTables returned error: %v", err)
	}

	// Capacity >= 4 leaves tables 2, 3, 5; table 3 is occupied.
	want := []int{2, 5}
	if len(tables) != len(want) {
		t.Fatalf("got %d tables, want %d: %+v", len(tables), len(want), tables)
	}
	for i, n := range want {
		if tables[i].Number != n {
			t.Errorf("tables[%d].Number = %d, want %d (ascending order)", i, tables[i].Number, n)
		}
	}
}

func TestAvailableTablesCapacityFilter(t *testing.T) {
	store := NewMemoryStore()
	engine := NewAvailabilityEngine(store, serviceDuration)
	restaurant := testRestaurant()

	tables, err := engine.AvailableTables(context.Background(), restaurant, 8, at(19, 0))
	if err != nil {
		t.Fatalf("AvailableTables returned error: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("no table seats 8, got %+v", tables)
	}
}
