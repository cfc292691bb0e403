package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products}
}

// Checkout prices the requested items against the catalog and persists a
// pending order. Prices and names are snapshotted into line items so later
// catalog edits do not change what the customer agreed to pay.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, requested []model.CheckoutItem) (*model.Order, error) {
	if len(requested) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	ids := make([]int64, 0, len(requested))
	for _, item := range requested {
		if item.Quantity < 1 {
			return nil, domainErrors.ErrInvalidQuantity
		}
		ids = append(ids, item.ProductID)
	}

	catalog, err := u.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var (
		subtotal model.Money
		items    = make([]model.OrderItem, 0, len(requested))
	)
	for i, item := range requested {
		product, ok := catalog[item.ProductID]
		if !ok || !product.Active {
			return nil, domainErrors.ErrProductUnavailable
		}
		if i == 0 {
			subtotal = model.NewMoney(decimal.Zero, product.Price.Currency)
		}
		subtotal = subtotal.Add(product.Price.MulInt(item.Quantity))
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	order := model.Order{
		UserID:   userID,
		Subtotal: subtotal,
		Discount: model.NewMoney(decimal.Zero, subtotal.Currency),
		Total:    subtotal,
	}
	return u.orders.Create(ctx, order, items)
}

// ListByUser returns the customer's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// DetailsForUser loads an order snapshot and checks ownership. A foreign
// order is reported as not found rather than forbidden so ids cannot be
// probed.
func (u *OrderUseCase) DetailsForUser(ctx context.Context, orderID, userID int64) (*model.OrderDetails, error) {
	details, err := u.orders.GetDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if details.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return details, nil
}

// ListPending returns orders awaiting manual payment verification.
func (u *OrderUseCase) ListPending(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListByStatus(ctx, model.OrderStatusPending, limit)
}

// StalePaid returns ids of paid orders that sat unprocessed longer than
// olderThan, candidates for the reconciliation sweep.
func (u *OrderUseCase) StalePaid(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error) {
	return u.orders.ListStalePaid(ctx, olderThan, limit)
}
