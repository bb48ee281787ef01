package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"temple-eats/internal/database"
	"temple-eats/internal/logger"
	"temple-eats/internal/models"
)

// ErrOrderNotFound is returned when no order exists for the given number
var ErrOrderNotFound = errors.New("order not found")

// Service provides read-only tracking over placed orders
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new tracking service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// GetOrderStatus retrieves the current status of an order
func (s *Service) GetOrderStatus(ctx context.Context, orderNumber, requestID string) (*models.OrderTrackingResponse, error) {
	var (
		order         models.Order
		status        string
		driverName    *string
		driverVehicle *string
		driverPhone   *string
	)

	err := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, orderNumber).Scan(
		&order.ID,
		&order.Number,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.CustomerEmail,
		&order.FulfillmentType,
		&order.DeliveryAddress,
		&order.PaymentMethod,
		&order.SpecialInstructions,
		&order.Subtotal,
		&order.Tax,
		&order.DeliveryFee,
		&order.Total,
		&order.Priority,
		&status,
		&driverName,
		&driverVehicle,
		&driverPhone,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("db_query_failed", "Failed to query order", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, fmt.Errorf("database error: %w", err)
	}

	order.Status = models.Status(status)

	var driver *models.Driver
	if driverName != nil && *driverName != "" {
		driver = &models.Driver{Name: *driverName}
		if driverVehicle != nil {
			driver.Vehicle = *driverVehicle
		}
		if driverPhone != nil {
			driver.Phone = *driverPhone
		}
	}

	return &models.OrderTrackingResponse{
		OrderNumber:   order.Number,
		CurrentStatus: string(order.Status),
		EstimatedTime: models.EstimateForStatus(order.Status, order.FulfillmentType),
		UpdatedAt:     order.UpdatedAt.UTC().Format(time.RFC3339),
		Driver:        driver,
	}, nil
}

// GetOrderHistory retrieves the complete status history of an order
func (s *Service) GetOrderHistory(ctx context.Context, orderNumber, requestID string) ([]models.OrderStatusHistory, error) {
	var orderExists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM orders WHERE number = $1)", orderNumber).Scan(&orderExists)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to check order existence", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !orderExists {
		return nil, ErrOrderNotFound
	}

	rows, err := s.db.Query(ctx, database.GetOrderStatusHistorySQL, orderNumber)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query order history", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var history []models.OrderStatusHistory
	for rows.Next() {
		var entry models.OrderStatusHistory
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			s.logger.Error("db_scan_failed", "Failed to scan order history row", requestID, err, nil)
			return nil, fmt.Errorf("database error: %w", err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return history, nil
}

// ListCustomerOrders retrieves a customer's past orders, newest first
func (s *Service) ListCustomerOrders(ctx context.Context, customerEmail, requestID string) ([]models.OrderSummary, error) {
	rows, err := s.db.Query(ctx, database.GetOrdersByCustomerSQL, customerEmail)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query customer orders", requestID, err, map[string]interface{}{
			"customer_email": customerEmail,
		})
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderSummary
	for rows.Next() {
		var (
			summary models.OrderSummary
			status  string
			lines   []byte
		)
		if err := rows.Scan(&summary.OrderNumber, &summary.FulfillmentType, &summary.Total, &status, &summary.CreatedAt, &lines); err != nil {
			s.logger.Error("db_scan_failed", "Failed to scan customer order row", requestID, err, nil)
			return nil, fmt.Errorf("database error: %w", err)
		}
		summary.Status = models.Status(status)
		if err := json.Unmarshal(lines, &summary.Lines); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
		orders = append(orders, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return orders, nil
}

// HealthCheck verifies the database connection
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.db.Ping(ctx) == nil
}
