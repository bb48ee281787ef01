package models

import (
	"fmt"
	"time"
)

// OrderMessage is the message handed to fulfillment workers when an order
// is placed.
type OrderMessage struct {
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	FulfillmentType FulfillmentType `json:"fulfillment_type"`
	DeliveryAddress *string         `json:"delivery_address,omitempty"`
	Lines           []OrderLine     `json:"items"`
	Total           float64         `json:"total"`
	Priority        int             `json:"priority"`
}

// StatusUpdateMessage is a status change notification
type StatusUpdateMessage struct {
	OrderNumber   string    `json:"order_number"`
	OldStatus     Status    `json:"old_status"`
	NewStatus     Status    `json:"new_status"`
	ChangedBy     string    `json:"changed_by"`
	Timestamp     time.Time `json:"timestamp"`
	EstimatedTime string    `json:"estimated_time,omitempty"`
	Driver        *Driver   `json:"driver,omitempty"`
}

// NewOrderMessage builds the fulfillment message for a placed order
func NewOrderMessage(order *Order) *OrderMessage {
	return &OrderMessage{
		OrderNumber:     order.Number,
		CustomerName:    order.CustomerName,
		FulfillmentType: order.FulfillmentType,
		DeliveryAddress: order.DeliveryAddress,
		Lines:           order.Lines,
		Total:           order.Total,
		Priority:        order.Priority,
	}
}

// NewStatusUpdateMessage builds a notification for an order status change
func NewStatusUpdateMessage(orderNumber string, oldStatus, newStatus Status, changedBy, estimatedTime string, driver *Driver) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderNumber:   orderNumber,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		ChangedBy:     changedBy,
		Timestamp:     time.Now().UTC(),
		EstimatedTime: estimatedTime,
		Driver:        driver,
	}
}

// RoutingKey generates the routing key for order messages
func RoutingKey(fulfillment FulfillmentType, priority int) string {
	return fmt.Sprintf("fulfillment.%s.%d", fulfillment, priority)
}
