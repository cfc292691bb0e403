package dto

import "time"

// CheckoutItemRequest is one requested catalog position.
type CheckoutItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest describes the checkout payload.
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// OrderResponse describes an order history entry.
type OrderResponse struct {
	ID            int64     `json:"id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Subtotal      string    `json:"subtotal"`
	Discount      string    `json:"discount"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}
