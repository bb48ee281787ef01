package models

import "fmt"

// ValidationError describes a rejected request field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckoutRequest places the current session cart as an order
type CheckoutRequest struct {
	CustomerName        string  `json:"customer_name"`
	CustomerPhone       string  `json:"customer_phone,omitempty"`
	CustomerEmail       string  `json:"customer_email,omitempty"`
	FulfillmentType     string  `json:"fulfillment_type"`
	DeliveryAddress     *string `json:"delivery_address,omitempty"`
	PaymentMethod       string  `json:"payment_method,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// CheckoutResponse is returned after an order is successfully placed
type CheckoutResponse struct {
	OrderNumber   string  `json:"order_number"`
	Status        string  `json:"status"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	DeliveryFee   float64 `json:"delivery_fee"`
	Total         float64 `json:"total"`
	PointsEarned  int     `json:"points_earned"`
	EstimatedTime string  `json:"estimated_time"`
}

// Validate checks the checkout request fields before any state changes
func (req *CheckoutRequest) Validate() error {
	if err := validateCustomerName(req.CustomerName); err != nil {
		return err
	}

	fulfillment, err := validateFulfillmentType(req.FulfillmentType)
	if err != nil {
		return err
	}

	return validateFulfillmentFields(fulfillment, req.DeliveryAddress)
}

func validateCustomerName(name string) error {
	if name == "" {
		return ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if len(name) > 100 {
		return ValidationError{Field: "customer_name", Message: "customer name must not exceed 100 characters"}
	}
	return nil
}

func validateFulfillmentType(fulfillment string) (FulfillmentType, error) {
	switch FulfillmentType(fulfillment) {
	case Delivery, Pickup:
		return FulfillmentType(fulfillment), nil
	default:
		return "", ValidationError{Field: "fulfillment_type", Message: "fulfillment_type must be one of: delivery, pickup"}
	}
}

func validateFulfillmentFields(fulfillment FulfillmentType, deliveryAddress *string) error {
	switch fulfillment {
	case Delivery:
		if deliveryAddress == nil || *deliveryAddress == "" {
			return ValidationError{Field: "delivery_address", Message: "delivery_address is required for delivery orders"}
		}
		if len(*deliveryAddress) < 10 {
			return ValidationError{Field: "delivery_address", Message: "delivery_address must be at least 10 characters"}
		}
	case Pickup:
		if deliveryAddress != nil {
			return ValidationError{Field: "delivery_address", Message: "delivery_address must not be present for pickup orders"}
		}
	}
	return nil
}
