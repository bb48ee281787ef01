package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"temple-eats/internal/database"
	"temple-eats/internal/logger"
	"temple-eats/internal/messaging"
	"temple-eats/internal/models"
)

// Worker drives placed orders through their status lifecycle
type Worker struct {
	name         string
	stepInterval time.Duration
	prefetch     int

	db        *database.DB
	consumer  *messaging.Consumer
	publisher *messaging.Publisher
	logger    *logger.Logger

	// Graceful shutdown
	shutdown chan os.Signal
	done     chan bool
}

// NewWorker creates a new fulfillment worker
func NewWorker(name string, stepInterval time.Duration, prefetch int,
	db *database.DB, consumer *messaging.Consumer, publisher *messaging.Publisher, log *logger.Logger) *Worker {

	if stepInterval <= 0 {
		stepInterval = DefaultStepInterval
	}

	return &Worker{
		name:         name,
		stepInterval: stepInterval,
		prefetch:     prefetch,
		db:           db,
		consumer:     consumer,
		publisher:    publisher,
		logger:       log,
		shutdown:     make(chan os.Signal, 1),
		done:         make(chan bool, 1),
	}
}

// Start starts the fulfillment worker
func (w *Worker) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(w.shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := w.consumer.StartConsuming(ctx, w.handleMessage); err != nil {
			w.logger.Error("consumer_failed", "Message consumer failed", requestID, err, nil)
		}
		w.done <- true
	}()

	w.logger.Info("worker_started", fmt.Sprintf("Fulfillment worker %s started", w.name), requestID, map[string]interface{}{
		"worker_name":   w.name,
		"step_interval": w.stepInterval.Seconds(),
		"prefetch":      w.prefetch,
	})

	select {
	case <-w.shutdown:
		w.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		if w.consumer != nil {
			w.consumer.Close()
		}
		return nil
	case <-w.done:
		return nil
	}
}

// handleMessage processes incoming order messages
func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var orderMsg models.OrderMessage
	if err := json.Unmarshal(body, &orderMsg); err != nil {
		w.logger.Error("message_parsing_failed", "Failed to parse order message", requestID, err, nil)
		return fmt.Errorf("failed to parse message: %w", err)
	}

	w.logger.Debug("order_processing_started", fmt.Sprintf("Processing order %s", orderMsg.OrderNumber), requestID, map[string]interface{}{
		"order_number":     orderMsg.OrderNumber,
		"customer_name":    orderMsg.CustomerName,
		"fulfillment_type": orderMsg.FulfillmentType,
		"total":            orderMsg.Total,
	})

	return w.progressOrder(ctx, &orderMsg, requestID)
}

// progressOrder advances an order one status at a time until it is
// delivered or cancelled. Each iteration waits one step interval, re-reads
// the stored status, and attempts a guarded advance; a cancellation that
// lands between the read and the update makes the advance a no-op.
func (w *Worker) progressOrder(ctx context.Context, orderMsg *models.OrderMessage, requestID string) error {
	// Statuses only ever move forward or to cancelled, so this terminates
	// after at most one guarded miss per transition.
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.stepInterval):
		}

		stored, err := w.currentStatus(ctx, orderMsg.OrderNumber)
		if err != nil {
			return fmt.Errorf("failed to read order status: %w", err)
		}

		next, ok := NextAdvance(stored)
		if !ok {
			if stored == models.StatusCancelled {
				w.logger.Info("progression_halted", fmt.Sprintf("Order %s was cancelled, stopping progression", orderMsg.OrderNumber), requestID, map[string]interface{}{
					"order_number": orderMsg.OrderNumber,
				})
				return nil
			}
			break
		}

		var driver *models.Driver
		if next == models.StatusOutForDelivery && orderMsg.FulfillmentType == models.Delivery {
			assigned := AssignDriver(orderMsg.OrderNumber)
			driver = &assigned
		}

		advanced, err := w.advanceOrder(ctx, orderMsg.OrderNumber, stored, next, driver)
		if err != nil {
			return fmt.Errorf("failed to advance order to %s: %w", next, err)
		}
		if !advanced {
			// The status moved underneath us; the next iteration re-reads it
			w.logger.Debug("progression_contended", fmt.Sprintf("Order %s changed while advancing", orderMsg.OrderNumber), requestID, map[string]interface{}{
				"order_number": orderMsg.OrderNumber,
				"expected":     string(stored),
			})
			continue
		}

		estimate := models.EstimateForStatus(next, orderMsg.FulfillmentType)
		statusUpdate := models.NewStatusUpdateMessage(orderMsg.OrderNumber, stored, next, w.name, estimate, driver)
		if err := w.publisher.PublishNotification(ctx, statusUpdate); err != nil {
			w.logger.Error("notification_publish_failed", "Failed to publish status notification", requestID, err, map[string]interface{}{
				"order_number": orderMsg.OrderNumber,
				"new_status":   string(next),
			})
			// Progression continues even when the notification fails
		}

		w.logger.Debug("status_advanced", fmt.Sprintf("Order %s advanced to %s", orderMsg.OrderNumber, next), requestID, map[string]interface{}{
			"order_number": orderMsg.OrderNumber,
			"old_status":   string(stored),
			"new_status":   string(next),
		})
	}

	w.logger.Info("order_completed", fmt.Sprintf("Order %s finished processing", orderMsg.OrderNumber), requestID, map[string]interface{}{
		"order_number": orderMsg.OrderNumber,
		"processed_by": w.name,
	})

	return nil
}

// currentStatus reads the stored status of an order
func (w *Worker) currentStatus(ctx context.Context, orderNumber string) (models.Status, error) {
	var status string
	if err := w.db.QueryRow(ctx, database.GetOrderStatusSQL, orderNumber).Scan(&status); err != nil {
		return "", err
	}
	return models.Status(status), nil
}

// advanceOrder moves the order from one status to the next in a single
// transaction. The update is guarded on the expected current status; when
// the guard misses the transaction is rolled back and advanced is false.
func (w *Worker) advanceOrder(ctx context.Context, orderNumber string, from, to models.Status, driver *models.Driver) (bool, error) {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	advanceSQL := database.AdvanceOrderStatusSQL
	if to == models.StatusDelivered {
		advanceSQL = database.AdvanceOrderDeliveredSQL
	}
	tag, err := tx.Exec(ctx, advanceSQL, string(to), orderNumber, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if driver != nil {
		_, err = tx.Exec(ctx, database.UpdateOrderDriverSQL, driver.Name, driver.Vehicle, driver.Phone, orderNumber)
		if err != nil {
			return false, fmt.Errorf("failed to assign driver: %w", err)
		}
	}

	var orderID int
	if err = tx.QueryRow(ctx, "SELECT id FROM orders WHERE number = $1", orderNumber).Scan(&orderID); err != nil {
		return false, fmt.Errorf("failed to get order ID: %w", err)
	}

	notes := fmt.Sprintf("Order status changed to %s by %s", to, w.name)
	if _, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, orderID, string(to), w.name, notes); err != nil {
		return false, fmt.Errorf("failed to insert status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
