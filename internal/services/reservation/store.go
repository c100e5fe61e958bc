package reservation

import (
	"context"
	"sort"
	"sync"

	"dinehub/internal/models"
)

// Store is the durable home of reservation records. Records are
// appended and status-updated, never deleted; cancellation is a status
// so the audit trail survives.
//
// UpdateStatus is a compare-and-set: the write applies only while the
// stored status still equals from, otherwise ErrStatusConflict. The
// state machine check and the write therefore cannot be split by a
// concurrent mutation on the same record.
type Store interface {
	Insert(ctx context.Context, r models.Reservation) error
	Get(ctx context.Context, id string) (models.Reservation, error)
	UpdateStatus(ctx context.Context, id string, from, to models.ReservationStatus) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Reservation, error)
	ListByTable(ctx context.Context, restaurantID string, tableNumber int) ([]models.Reservation, error)
}

// MemoryStore keeps reservations in process memory. It backs the api
// mode when no database is configured, and the package tests.
type MemoryStore struct {
	mu           sync.RWMutex
	reservations map[string]models.Reservation
	order        []string
}

// NewMemoryStore creates an empty in-memory reservation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reservations: make(map[string]models.Reservation),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, r models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reservations[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.reservations[r.ID] = r
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, ErrReservationNotFound
	}
	return r, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, from, to models.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	if r.Status != from {
		return ErrStatusConflict
	}
	r.Status = to
	s.reservations[id] = r
	return nil
}

func (s *MemoryStore) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Reservation
	for _, id := range s.order {
		r := s.reservations[id]
		if r.RestaurantID == restaurantID {
			out = append(out, r)
		}
	}
	sortByTime(out)
	return out, nil
}

func (s *MemoryStore) ListByTable(ctx context.Context, restaurantID string, tableNumber int) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Reservation
	for _, id := range s.order {
		r := s.reservations[id]
		if r.RestaurantID == restaurantID && r.TableNumber == tableNumber {
			out = append(out, r)
		}
	}
	sortByTime(out)
	return out, nil
}

func sortByTime(rs []models.Reservation) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Time.Before(rs[j].Time) })
}
