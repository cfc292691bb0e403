package repository

import (
	"context"
	"time"

	"github.com/darkbyte-host/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists a checkout order together with its line items.
	Create(ctx context.Context, order model.Order, items []model.OrderItem) (*model.Order, error)

	// GetDetails loads an order with its owner and line items resolved to
	// products. Returns ErrNotFound for an unknown id.
	GetDetails(ctx context.Context, orderID int64) (*model.OrderDetails, error)

	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)

	// ClaimVerification atomically moves payment status pending -> verified
	// and order status -> paid. Reports false when the order was not in
	// pending state, which makes concurrent verifications single-writer.
	ClaimVerification(ctx context.Context, orderID int64) (bool, error)

	// ClaimRejection atomically moves payment status pending -> rejected
	// and order status -> cancelled.
	ClaimRejection(ctx context.Context, orderID int64) (bool, error)

	SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// ListStalePaid returns ids of orders stuck in paid state longer than
	// the given age, candidates for the reconciliation sweep.
	ListStalePaid(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error)
}
