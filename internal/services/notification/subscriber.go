package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"temple-eats/internal/logger"
	"temple-eats/internal/messaging"
	"temple-eats/internal/models"
)

// Subscriber handles status update notifications
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	// Graceful shutdown
	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start starts the notification subscriber
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleNotification); err != nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		if s.consumer != nil {
			s.consumer.Close()
		}
		return nil
	case <-s.done:
		return nil
	}
}

// handleNotification processes incoming status update notifications
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var statusUpdate models.StatusUpdateMessage
	if err := json.Unmarshal(body, &statusUpdate); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	s.logger.Debug("notification_received", "Received status update notification", requestID, map[string]interface{}{
		"order_number": statusUpdate.OrderNumber,
		"new_status":   statusUpdate.NewStatus,
		"changed_by":   statusUpdate.ChangedBy,
	})

	s.displayNotification(&statusUpdate)

	return nil
}

// displayNotification prints a human-readable notification to stdout
func (s *Subscriber) displayNotification(statusUpdate *models.StatusUpdateMessage) {
	fmt.Println(FormatNotification(statusUpdate))

	s.logger.Info("notification_displayed", "Notification displayed to user", "", map[string]interface{}{
		"order_number": statusUpdate.OrderNumber,
		"old_status":   statusUpdate.OldStatus,
		"new_status":   statusUpdate.NewStatus,
		"changed_by":   statusUpdate.ChangedBy,
		"timestamp":    statusUpdate.Timestamp.Format("2006-01-02 15:04:05"),
	})
}

// FormatNotification creates the human-readable line for a status update
func FormatNotification(statusUpdate *models.StatusUpdateMessage) string {
	timestamp := statusUpdate.Timestamp.Format("2006-01-02 15:04:05")

	switch statusUpdate.NewStatus {
	case models.StatusConfirmed:
		return fmt.Sprintf("📋 [%s] Order %s has been confirmed. Estimated time: %s",
			timestamp, statusUpdate.OrderNumber, statusUpdate.EstimatedTime)
	case models.StatusPreparing:
		return fmt.Sprintf("🍗 [%s] Order %s is being prepared. Estimated time: %s",
			timestamp, statusUpdate.OrderNumber, statusUpdate.EstimatedTime)
	case models.StatusReady:
		return fmt.Sprintf("✅ [%s] Order %s is ready! %s",
			timestamp, statusUpdate.OrderNumber, statusUpdate.EstimatedTime)
	case models.StatusOutForDelivery:
		if statusUpdate.Driver != nil {
			return fmt.Sprintf("🚗 [%s] Order %s is out for delivery with %s (%s, %s). Arriving in %s",
				timestamp, statusUpdate.OrderNumber,
				statusUpdate.Driver.Name, statusUpdate.Driver.Vehicle, statusUpdate.Driver.Phone,
				statusUpdate.EstimatedTime)
		}
		return fmt.Sprintf("🚗 [%s] Order %s is out for delivery. Arriving in %s",
			timestamp, statusUpdate.OrderNumber, statusUpdate.EstimatedTime)
	case models.StatusDelivered:
		return fmt.Sprintf("🎉 [%s] Order %s has been delivered. Enjoy your meal!",
			timestamp, statusUpdate.OrderNumber)
	case models.StatusCancelled:
		return fmt.Sprintf("❌ [%s] Order %s has been cancelled.",
			timestamp, statusUpdate.OrderNumber)
	default:
		return fmt.Sprintf("📋 [%s] Order %s status changed from '%s' to '%s' by %s.",
			timestamp, statusUpdate.OrderNumber,
			statusUpdate.OldStatus, statusUpdate.NewStatus, statusUpdate.ChangedBy)
	}
}
