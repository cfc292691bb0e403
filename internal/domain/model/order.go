package model

import (
	"errors"
	"time"
)

// PaymentStatus describes the state of manual payment verification.
// Transitions are forward-only: pending can become verified or rejected,
// nothing ever returns to pending.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// OrderStatus describes the order lifecycle. "completed" means the
// verification workflow finished, not that every server was provisioned.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// remember to add new statuses to the validOrderStatuses map
var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:   {},
	OrderStatusPaid:      {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ToOrderStatus validates a raw status string.
func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}
	return "", errors.New("invalid order status")
}

// Order describes a purchase created at checkout.
type Order struct {
	ID            int64
	UserID        int64
	Subtotal      Money
	Discount      Money
	Total         Money
	PaymentStatus PaymentStatus
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is one product snapshot within an order. Quantity and unit
// price are frozen at checkout time.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice Money
}

// OrderItemDetails is a line item resolved to its current product record.
type OrderItemDetails struct {
	OrderItem
	Product Product
}

// OrderDetails is an order snapshot loaded with its owner and resolved
// line items, the shape the verification workflow operates on.
type OrderDetails struct {
	Order
	User  User
	Items []OrderItemDetails
}

// CheckoutItem is one catalog position requested at checkout.
type CheckoutItem struct {
	ProductID int64
	Quantity  int
}

// VerificationResult reports what a verification run did. Per-item
// provisioning failures are data here, not errors: the admin contract is
// to report what happened, and the order completes regardless.
type VerificationResult struct {
	OrderID          int64
	Success          bool
	ServersCreated   int
	Errors           []string
	InvoiceGenerated bool
	Message          string
}
