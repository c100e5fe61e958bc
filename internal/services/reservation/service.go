package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dinehub/internal/logger"
	"dinehub/internal/models"
)

// EventPublisher pushes reservation lifecycle events to the broker.
// messaging.Publisher satisfies it; tests use a fake.
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, msg interface{}, routingKey string) error
	PublishNotification(ctx context.Context, msg interface{}) error
}

// Service is the booking front of the reservation engine. It gates on
// working hours, then runs the availability check and the registry
// insert inside one critical section per (restaurant, table), closing
// the check-then-act gap without serializing unrelated tables.
type Service struct {
	engine    *AvailabilityEngine
	registry  *Registry
	publisher EventPublisher
	logger    *logger.Logger

	mu         sync.Mutex
	tableLocks map[string]*sync.Mutex
}

// NewService creates a booking service.
func NewService(engine *AvailabilityEngine, registry *Registry, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		engine:     engine,
		registry:   registry,
		publisher:  publisher,
		logger:     log,
		tableLocks: make(map[string]*sync.Mutex),
	}
}

// tableLock returns the mutex guarding one (restaurant, table) pair.
func (s *Service) tableLock(restaurantID string, tableNumber int) *sync.Mutex {
	key := fmt.Sprintf("%s/%d", restaurantID, tableNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.tableLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.tableLocks[key] = lock
	}
	return lock
}

// CreateReservation books a table. Order of checks: request validity,
// table exists, working hours, then availability + insert under the
// per-table lock. The store write is synchronous inside the critical
// section so a concurrent request for an overlapping slot cannot slip
// between check and insert.
func (s *Service) CreateReservation(ctx context.Context, restaurant models.Restaurant, req models.CreateReservationRequest, requestID string) (models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return models.Reservation{}, err
	}
	if _, ok := restaurant.TableByNumber(req.TableNumber); !ok {
		return models.Reservation{}, ErrUnknownTable
	}
	if !restaurant.WorkingHours.IsOpen(req.Time) {
		return models.Reservation{}, ErrRestaurantClosed
	}

	lock := s.tableLock(restaurant.ID, req.TableNumber)
	lock.Lock()
	defer lock.Unlock()

	free, err := s.engine.IsTableAvailable(ctx, restaurant, req.TableNumber, req.Time)
	if err != nil {
		return models.Reservation{}, err
	}
	if !free {
		return models.Reservation{}, ErrTableUnavailable
	}

	reservation, err := s.registry.Create(ctx, req)
	if err != nil {
		return models.Reservation{}, err
	}

	s.logger.Info("reservation_created", "Reservation created", requestID, map[string]interface{}{
		"reservation_id": reservation.ID,
		"restaurant_id":  reservation.RestaurantID,
		"table_number":   reservation.TableNumber,
		"guest_count":    reservation.GuestCount,
	})

	s.publishEvent(ctx, reservation, "created", requestID)
	return reservation, nil
}

// CancelReservation cancels a booking and notifies subscribers.
func (s *Service) CancelReservation(ctx context.Context, id, requestID string) (models.Reservation, error) {
	before, err := s.registry.Get(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}

	reservation, err := s.registry.Cancel(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}

	s.logger.Info("reservation_cancelled", "Reservation cancelled", requestID, map[string]interface{}{
		"reservation_id": reservation.ID,
		"restaurant_id":  reservation.RestaurantID,
	})

	s.publishEvent(ctx, reservation, "cancelled", requestID)
	s.publishStatusUpdate(ctx, reservation, before.Status, requestID)
	return reservation, nil
}

// TransitionStatus applies a status change and fans out the update.
func (s *Service) TransitionStatus(ctx context.Context, id string, newStatus models.ReservationStatus, requestID string) (models.Reservation, error) {
	before, err := s.registry.Get(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}

	reservation, err := s.registry.TransitionStatus(ctx, id, newStatus)
	if err != nil {
		return models.Reservation{}, err
	}

	s.logger.Info("reservation_status_changed", "Reservation status changed", requestID, map[string]interface{}{
		"reservation_id": reservation.ID,
		"old_status":     string(before.Status),
		"new_status":     string(reservation.Status),
	})

	s.publishStatusUpdate(ctx, reservation, before.Status, requestID)
	return reservation, nil
}

// AvailableTables exposes the engine's table query to the handler.
func (s *Service) AvailableTables(ctx context.Context, restaurant models.Restaurant, guestCount int, at time.Time) ([]models.Table, error) {
	return s.engine.AvailableTables(ctx, restaurant, guestCount, at)
}

// Reservations lists a restaurant's reservations, any status.
func (s *Service) Reservations(ctx context.Context, restaurantID string) ([]models.Reservation, error) {
	return s.registry.ByRestaurant(ctx, restaurantID)
}

// publishEvent sends a topic event; broker trouble is logged, not
// surfaced, because the reservation is already durable.
func (s *Service) publishEvent(ctx context.Context, r models.Reservation, event, requestID string) {
	if s.publisher == nil {
		return
	}
	msg := models.NewReservationEventMessage(r)
	routingKey := models.ReservationRoutingKey(event, r.RestaurantID)
	if err := s.publisher.PublishReservationEvent(ctx, msg, routingKey); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish reservation event", requestID, err, map[string]interface{}{
			"reservation_id": r.ID,
			"routing_key":    routingKey,
		})
	}
}

func (s *Service) publishStatusUpdate(ctx context.Context, r models.Reservation, oldStatus models.ReservationStatus, requestID string) {
	if s.publisher == nil {
		return
	}
	msg := models.NewStatusUpdateMessage(r, oldStatus)
	if err := s.publisher.PublishNotification(ctx, msg); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish status update", requestID, err, map[string]interface{}{
			"reservation_id": r.ID,
		})
	}
}
