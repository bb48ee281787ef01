package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"temple-eats/internal/cart"
	"temple-eats/internal/catalog"
	"temple-eats/internal/config"
	"temple-eats/internal/database"
	"temple-eats/internal/loyalty"
	"temple-eats/internal/logger"
	"temple-eats/internal/messaging"
	"temple-eats/internal/models"
)

var (
	// ErrCartEmpty is returned when checkout is attempted on an empty cart
	ErrCartEmpty = errors.New("cart is empty")
	// ErrOrderNotFound is returned for operations on unknown order numbers
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotCancellable is returned when an order has progressed past the
	// point where it can still be called back
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// Service owns the session carts and loyalty accounts and turns priced carts
// into placed orders.
type Service struct {
	db        *database.DB
	publisher *messaging.Publisher
	logger    *logger.Logger
	menu      *catalog.Catalog
	carts     *cart.Manager
	loyalty   *loyalty.Manager
	pricing   cart.Pricing
}

// NewService creates the order service
func NewService(db *database.DB, publisher *messaging.Publisher, log *logger.Logger, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		publisher: publisher,
		logger:    log,
		menu:      catalog.Default(),
		carts:     cart.NewManager(),
		loyalty:   loyalty.NewManager(cfg.Loyalty.StartingBalance),
		pricing:   cart.Pricing{TaxRate: cfg.Pricing.TaxRate, DeliveryFee: cfg.Pricing.DeliveryFee},
	}
}

// Menu returns the menu catalog
func (s *Service) Menu() *catalog.Catalog {
	return s.menu
}

// Carts returns the session cart manager
func (s *Service) Carts() *cart.Manager {
	return s.carts
}

// Pricing returns the tax and delivery fee policy
func (s *Service) Pricing() cart.Pricing {
	return s.pricing
}

// LoyaltyAccount returns the customer's loyalty account, creating it on
// first use.
func (s *Service) LoyaltyAccount(customerID string) *loyalty.Account {
	return s.loyalty.Account(customerID)
}

// AddToCart resolves the chosen options against the menu and adds the
// resulting line to the session cart.
func (s *Service) AddToCart(sessionID, itemID string, choices map[string]string, quantity int) (cart.Line, error) {
	line, err := s.menu.ResolveLine(itemID, choices, quantity)
	if err != nil {
		return cart.Line{}, err
	}

	ledger := s.carts.GetOrCreate(sessionID)
	if err := ledger.AddItem(line); err != nil {
		return cart.Line{}, err
	}
	return line, nil
}

// Checkout snapshots the session cart into an immutable order, publishes it
// for fulfillment, awards loyalty points, and clears the cart.
func (s *Service) Checkout(ctx context.Context, sessionID, customerID string, req *models.CheckoutRequest, requestID string) (*models.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ledger, ok := s.carts.Get(sessionID)
	if !ok || len(ledger.Lines()) == 0 {
		return nil, ErrCartEmpty
	}

	fulfillment := models.FulfillmentType(req.FulfillmentType)
	totals := ledger.Totals(s.pricing, fulfillment == models.Delivery)

	order := &models.Order{
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		FulfillmentType:     fulfillment,
		DeliveryAddress:     req.DeliveryAddress,
		PaymentMethod:       req.PaymentMethod,
		SpecialInstructions: req.SpecialInstructions,
		Lines:               orderLines(ledger.Lines()),
		Subtotal:            totals.Subtotal,
		Tax:                 totals.Tax,
		DeliveryFee:         totals.DeliveryFee,
		Total:               totals.Total,
		Priority:            models.CalculatePriority(totals.Total),
		Status:              models.StatusPlaced,
	}

	if err := s.insertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	msg := models.NewOrderMessage(order)
	routingKey := models.RoutingKey(order.FulfillmentType, order.Priority)
	if err := s.publisher.PublishOrder(ctx, msg, routingKey, uint8(order.Priority)); err != nil {
		s.logger.Error("order_publish_failed", "Failed to publish order for fulfillment", requestID, err, map[string]interface{}{
			"order_number": order.Number,
		})
		return nil, fmt.Errorf("failed to publish order: %w", err)
	}

	points := s.awardOrderPoints(ctx, customerID, order, requestID)

	ledger.Clear()

	s.logger.Info("order_placed", fmt.Sprintf("Order %s placed", order.Number), requestID, map[string]interface{}{
		"order_number":  order.Number,
		"total":         order.Total,
		"points_earned": points,
	})

	return &models.CheckoutResponse{
		OrderNumber:   order.Number,
		Status:        string(order.Status),
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		DeliveryFee:   order.DeliveryFee,
		Total:         order.Total,
		PointsEarned:  points,
		EstimatedTime: models.EstimateForStatus(order.Status, order.FulfillmentType),
	}, nil
}

// orderLines converts cart lines into the flattened order snapshot
func orderLines(lines []cart.Line) []models.OrderLine {
	converted := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		var options map[string]string
		if len(line.Options) > 0 {
			options = make(map[string]string, len(line.Options))
			for group, opt := range line.Options {
				options[group] = opt.Name
			}
		}
		converted = append(converted, models.OrderLine{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Options:   options,
		})
	}
	return converted
}

// insertOrder stores the order, its lines, and the initial status log entry
// in one transaction, assigning the order number from today's sequence.
func (s *Service) insertOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	today := time.Now().UTC()
	var sequence int
	prefix := fmt.Sprintf("TMP_%s_%%", today.Format("20060102"))
	if err := tx.QueryRow(ctx, database.GetNextOrderSequenceSQL, prefix).Scan(&sequence); err != nil {
		return fmt.Errorf("failed to get order sequence: %w", err)
	}
	order.Number = models.GenerateOrderNumber(today, sequence)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.Number, order.CustomerName, order.CustomerPhone, order.CustomerEmail,
		order.FulfillmentType, order.DeliveryAddress, order.PaymentMethod, order.SpecialInstructions,
		order.Subtotal, order.Tax, order.DeliveryFee, order.Total, order.Priority,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range order.Lines {
		options, err := json.Marshal(line.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal line options: %w", err)
		}
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			order.ID, line.ItemID, line.Name, line.Quantity, line.UnitPrice, options)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		order.ID, models.StatusPlaced, "order-service", "Order placed")
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

// awardOrderPoints credits the customer with one point per whole currency
// unit of the order total. The order stands even if the audit write fails.
func (s *Service) awardOrderPoints(ctx context.Context, customerID string, order *models.Order, requestID string) int {
	points := loyalty.CalculateOrderPoints(order.Total)
	if points == 0 {
		return 0
	}

	account := s.loyalty.Account(customerID)
	txn, err := account.AwardPoints(points, fmt.Sprintf("Order #%s", order.Number), order.Number)
	if err != nil {
		s.logger.Error("points_award_failed", "Failed to award loyalty points", requestID, err, map[string]interface{}{
			"order_number": order.Number,
		})
		return 0
	}

	s.recordLoyaltyTransaction(ctx, customerID, txn, requestID)
	return points
}

// RedeemReward spends points against a catalog reward. The boolean is false
// when the balance is insufficient; the ledger is untouched in that case.
func (s *Service) RedeemReward(ctx context.Context, customerID, rewardID, requestID string) (loyalty.Reward, bool, error) {
	reward, ok := loyalty.RewardByID(rewardID)
	if !ok {
		return loyalty.Reward{}, false, models.ValidationError{Field: "reward_id", Message: "unknown reward"}
	}

	account := s.loyalty.Account(customerID)
	txn, ok, err := account.RedeemPoints(reward.PointsCost, reward.Name)
	if err != nil || !ok {
		return reward, ok, err
	}

	s.recordLoyaltyTransaction(ctx, customerID, txn, requestID)

	s.logger.Info("reward_redeemed", fmt.Sprintf("Redeemed %s for %d points", reward.Name, reward.PointsCost), requestID, map[string]interface{}{
		"reward_id": reward.ID,
		"balance":   account.Balance(),
	})
	return reward, true, nil
}

// recordLoyaltyTransaction mirrors a ledger entry into the audit table.
// Best effort: the in-memory ledger is authoritative for the session.
func (s *Service) recordLoyaltyTransaction(ctx context.Context, customerID string, txn loyalty.Transaction, requestID string) {
	if s.db == nil {
		return
	}
	var orderNumber *string
	if txn.OrderNumber != "" {
		orderNumber = &txn.OrderNumber
	}
	err := s.db.Exec(ctx, database.InsertLoyaltyTransactionSQL,
		txn.ID, customerID, string(txn.Type), txn.Points, txn.Description, orderNumber)
	if err != nil {
		s.logger.Error("loyalty_audit_failed", "Failed to record loyalty transaction", requestID, err, map[string]interface{}{
			"transaction_id": txn.ID,
		})
	}
}

// CancelOrder cancels an order that has not yet left the store
func (s *Service) CancelOrder(ctx context.Context, orderNumber, requestID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int
	var status models.Status
	err = tx.QueryRow(ctx, "SELECT id, status FROM orders WHERE number = $1 FOR UPDATE", orderNumber).Scan(&orderID, &status)
	if err != nil {
		return ErrOrderNotFound
	}

	if !status.CanCancel() {
		return ErrNotCancellable
	}

	if _, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, models.StatusCancelled, orderNumber); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		orderID, models.StatusCancelled, "order-service", "Cancelled by customer")
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	update := models.NewStatusUpdateMessage(orderNumber, status, models.StatusCancelled,
		"order-service", models.EstimateForStatus(models.StatusCancelled, ""), nil)
	if err := s.publisher.PublishNotification(ctx, update); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish cancellation notification", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
	}

	return nil
}

// HealthCheck reports whether the service's dependencies are reachable
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Database ping failed", "", err, nil)
		return false
	}
	return true
}
