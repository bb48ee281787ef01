package models

import (
	"fmt"
	"time"
)

// FulfillmentType represents how an order reaches the customer
type FulfillmentType string

const (
	Delivery FulfillmentType = "delivery"
	Pickup   FulfillmentType = "pickup"
)

// Status represents the fulfillment state of an order
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// statusSequence is the forward-only progression every order moves through.
// Cancellation is the only exit and never occurs automatically.
var statusSequence = []Status{
	StatusPlaced,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

// Index returns the position of the status in the progression, or -1 for
// cancelled and unknown statuses.
func (s Status) Index() int {
	for i, status := range statusSequence {
		if status == s {
			return i
		}
	}
	return -1
}

// Next returns the following status in the progression. The second return
// value is false when the status is terminal or outside the progression.
func (s Status) Next() (Status, bool) {
	idx := s.Index()
	if idx < 0 || idx == len(statusSequence)-1 {
		return s, false
	}
	return statusSequence[idx+1], true
}

// Terminal reports whether no further transitions are possible
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanAdvanceTo reports whether next is exactly one step forward from s.
// Regressions, skips, and repeats are never valid advances.
func (s Status) CanAdvanceTo(next Status) bool {
	expected, ok := s.Next()
	return ok && next == expected
}

// CanCancel reports whether an order in this status may still be cancelled.
// Once the order is out for delivery it can no longer be called back.
func (s Status) CanCancel() bool {
	idx := s.Index()
	return idx >= 0 && idx < StatusOutForDelivery.Index()
}

// Valid reports whether s names a known status
func (s Status) Valid() bool {
	return s == StatusCancelled || s.Index() >= 0
}

// Driver holds courier details, populated from out_for_delivery onward
type Driver struct {
	Name    string `json:"name"`
	Vehicle string `json:"vehicle"`
	Phone   string `json:"phone"`
}

// OrderLine is one priced line of a placed order. UnitPrice already includes
// any option surcharges resolved at add-to-cart time.
type OrderLine struct {
	ItemID    string            `json:"item_id"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	UnitPrice float64           `json:"unit_price"`
	Options   map[string]string `json:"options,omitempty"`
}

// Order is the immutable record of one placed cart. The pricing fields are a
// snapshot taken at checkout and never recomputed.
type Order struct {
	ID                  int             `json:"id,omitempty" db:"id"`
	CreatedAt           time.Time       `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at,omitempty" db:"updated_at"`
	Number              string          `json:"order_number" db:"number"`
	CustomerName        string          `json:"customer_name" db:"customer_name"`
	CustomerPhone       string          `json:"customer_phone,omitempty" db:"customer_phone"`
	CustomerEmail       string          `json:"customer_email,omitempty" db:"customer_email"`
	FulfillmentType     FulfillmentType `json:"fulfillment_type" db:"fulfillment_type"`
	DeliveryAddress     *string         `json:"delivery_address,omitempty" db:"delivery_address"`
	PaymentMethod       string          `json:"payment_method,omitempty" db:"payment_method"`
	SpecialInstructions string          `json:"special_instructions,omitempty" db:"special_instructions"`
	Lines               []OrderLine     `json:"items"`
	Subtotal            float64         `json:"subtotal" db:"subtotal"`
	Tax                 float64         `json:"tax" db:"tax"`
	DeliveryFee         float64         `json:"delivery_fee" db:"delivery_fee"`
	Total               float64         `json:"total" db:"total"`
	Priority            int             `json:"priority" db:"priority"`
	Status              Status          `json:"status" db:"status"`
	Driver              *Driver         `json:"driver,omitempty"`
	DeliveredAt         *time.Time      `json:"delivered_at,omitempty" db:"delivered_at"`
}

// OrderStatusHistory is an entry in the order status log
type OrderStatusHistory struct {
	Status    Status    `json:"status" db:"status"`
	ChangedBy string    `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time `json:"timestamp" db:"changed_at"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
}

// OrderSummaryLine is one line of a past order listing
type OrderSummaryLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderSummary is one entry in a customer's past order listing, newest first
type OrderSummary struct {
	OrderNumber     string             `json:"order_number"`
	FulfillmentType FulfillmentType    `json:"fulfillment_type"`
	Total           float64            `json:"total"`
	Status          Status             `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	Lines           []OrderSummaryLine `json:"items"`
}

// OrderTrackingResponse is the read-only tracking view of an order
type OrderTrackingResponse struct {
	OrderNumber   string  `json:"order_number"`
	CurrentStatus string  `json:"current_status"`
	EstimatedTime string  `json:"estimated_time"`
	UpdatedAt     string  `json:"updated_at"`
	Driver        *Driver `json:"driver,omitempty"`
}

// GenerateOrderNumber produces an order number in format TMP_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("TMP_%s_%03d", date.Format("20060102"), sequence)
}

// EstimateForStatus returns the customer-facing arrival estimate for a status
func EstimateForStatus(status Status, fulfillment FulfillmentType) string {
	switch status {
	case StatusReady:
		if fulfillment == Pickup {
			return "Ready for pickup"
		}
		return "Ready now"
	case StatusOutForDelivery:
		return "1 min"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "25-35 min"
	}
}

// CalculatePriority derives queue priority from the order total
func CalculatePriority(total float64) int {
	if total > 100.0 {
		return 10
	}
	if total >= 50.0 {
		return 5
	}
	return 1
}
