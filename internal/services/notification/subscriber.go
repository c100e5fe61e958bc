package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"dinehub/internal/logger"
	"dinehub/internal/messaging"
	"dinehub/internal/models"
)

// Subscriber consumes reservation status updates from the fanout
// exchange and surfaces them as guest-facing notifications. Delivery
// channels (push, mail) live outside this system; here they print.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes status updates until the context is cancelled.
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleStatusUpdate)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("notification consumer failed: %w", err)
	}
	return nil
}

// handleStatusUpdate processes one status update message.
func (s *Subscriber) handleStatusUpdate(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var update models.StatusUpdateMessage
	if err := json.Unmarshal(body, &update); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse status update", requestID, err, nil)
		return fmt.Errorf("failed to parse status update: %w", err)
	}

	fmt.Println(s.formatNotification(&update))

	s.logger.Info("notification_displayed", "Notification displayed to guest", requestID, map[string]interface{}{
		"reservation_id": update.ReservationID,
		"old_status":     update.OldStatus,
		"new_status":     update.NewStatus,
	})
	return nil
}

// formatNotification creates a human-readable notification message
func (s *Subscriber) formatNotification(update *models.StatusUpdateMessage) string {
	timestamp := update.Timestamp.Format("2006-01-02 15:04:05")

	switch update.NewStatus {
	case string(models.ReservationConfirmed):
		return fmt.Sprintf("[%s] Reservation %s for table %d has been confirmed. See you soon!",
			timestamp, update.ReservationID, update.TableNumber)
	case string(models.ReservationCompleted):
		return fmt.Sprintf("[%s] Reservation %s is complete. Thank you for dining with us!",
			timestamp, update.ReservationID)
	case string(models.ReservationCancelled):
		return fmt.Sprintf("[%s] Reservation %s for table %d has been cancelled.",
			timestamp, update.ReservationID, update.TableNumber)
	default:
		return fmt.Sprintf("[%s] Reservation %s changed from '%s' to '%s'.",
			timestamp, update.ReservationID, update.OldStatus, update.NewStatus)
	}
}

// Close stops the underlying consumer.
func (s *Subscriber) Close() error {
	if s.consumer != nil {
		return s.consumer.Close()
	}
	return nil
}
