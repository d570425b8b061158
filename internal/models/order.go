package models

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// ShippingDetails is the address block captured at checkout.
type ShippingDetails struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

// Order is the record of a completed checkout: the cart lines as they were
// at submission, the taxed total, and the shipping details.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Lines         []CartLine      `json:"lines"`
	Subtotal      float64         `json:"subtotal"`
	Total         float64         `json:"total"`
	Status        string          `json:"status"`
	Shipping      ShippingDetails `json:"shipping"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	CompletedAt   time.Time       `json:"completed_at,omitempty"`
}
