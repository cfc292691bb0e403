package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
)

func (r *orderRepository) Create(ctx context.Context, order model.Order, items []model.OrderItem) (*model.Order, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	created := order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (user_id, subtotal, discount, total, currency)
                             VALUES ($1, $2, $3, $4, $5)
                             RETURNING id, payment_status, status, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID,
			order.Subtotal.Amount,
			order.Discount.Amount,
			order.Total.Amount,
			order.Total.Currency.String(),
		).Scan(&created.ID, &created.PaymentStatus, &created.Status, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, name, quantity, unit_price)
                            VALUES ($1, $2, $3, $4, $5)`
		for _, item := range items {
			if _, err := tx.Exec(ctx, insertItem, created.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice.Amount); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetDetails(ctx context.Context, orderID int64) (*model.OrderDetails, error) {
	const orderQuery = `SELECT o.id, o.user_id, o.subtotal, o.discount, o.total, o.currency,
                               o.payment_status, o.status, o.created_at, o.updated_at,
                               u.email, u.name, u.password_hash, u.is_admin, u.created_at
                        FROM orders o
                        JOIN users u ON u.id = o.user_id
                        WHERE o.id=$1`

	var (
		details            model.OrderDetails
		subtotal, discount decimal.Decimal
		total              decimal.Decimal
		code               string
	)
	err := r.storage.pool.QueryRow(ctx, orderQuery, orderID).Scan(
		&details.ID, &details.UserID, &subtotal, &discount, &total, &code,
		&details.PaymentStatus, &details.Status, &details.CreatedAt, &details.UpdatedAt,
		&details.User.Email, &details.User.Name, &details.User.PasswordHash, &details.User.IsAdmin, &details.User.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	unit, err := parseCurrency(code)
	if err != nil {
		return nil, err
	}
	details.Subtotal = model.NewMoney(subtotal, unit)
	details.Discount = model.NewMoney(discount, unit)
	details.Total = model.NewMoney(total, unit)
	details.User.ID = details.UserID

	const itemsQuery = `SELECT i.id, i.order_id, i.product_id, i.name, i.quantity, i.unit_price,
                               p.name, p.description, p.price, p.currency, p.ram_mb, p.cpu_pct, p.disk_mb, p.duration_days, p.active
                        FROM order_items i
                        JOIN products p ON p.id = i.product_id
                        WHERE i.order_id=$1
                        ORDER BY i.id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item         model.OrderItemDetails
			itemPrice    decimal.Decimal
			productPrice decimal.Decimal
			productCode  string
		)
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &itemPrice,
			&item.Product.Name, &item.Product.Description, &productPrice, &productCode,
			&item.Product.RAMMB, &item.Product.CPUPercent, &item.Product.DiskMB,
			&item.Product.DurationDays, &item.Product.Active,
		)
		if err != nil {
			return nil, err
		}
		productUnit, err := parseCurrency(productCode)
		if err != nil {
			return nil, err
		}
		item.UnitPrice = model.NewMoney(itemPrice, unit)
		item.Product.ID = item.ProductID
		item.Product.Price = model.NewMoney(productPrice, productUnit)
		details.Items = append(details.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &details, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, subtotal, discount, total, currency, payment_status, status, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	const query = `SELECT id, user_id, subtotal, discount, total, currency, payment_status, status, created_at, updated_at
                   FROM orders WHERE status=$1 ORDER BY created_at DESC LIMIT $2`
	return r.list(ctx, query, status, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var (
			o                         model.Order
			subtotal, discount, total decimal.Decimal
			code                      string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &subtotal, &discount, &total, &code, &o.PaymentStatus, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		unit, err := parseCurrency(code)
		if err != nil {
			return nil, err
		}
		o.Subtotal = model.NewMoney(subtotal, unit)
		o.Discount = model.NewMoney(discount, unit)
		o.Total = model.NewMoney(total, unit)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClaimVerification flips payment pending -> verified and order -> paid in
// one conditional update, so only one of two concurrent verifications of
// the same order can win.
func (r *orderRepository) ClaimVerification(ctx context.Context, orderID int64) (bool, error) {
	const query = `UPDATE orders SET payment_status=$1, status=$2, updated_at=NOW()
                   WHERE id=$3 AND payment_status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, model.PaymentStatusVerified, model.OrderStatusPaid, orderID, model.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepository) ClaimRejection(ctx context.Context, orderID int64) (bool, error) {
	const query = `UPDATE orders SET payment_status=$1, status=$2, updated_at=NOW()
                   WHERE id=$3 AND payment_status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, model.PaymentStatusRejected, model.OrderStatusCancelled, orderID, model.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepository) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.storage.pool.Exec(ctx, query, status, orderID)
	return err
}

func (r *orderRepository) ListStalePaid(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error) {
	const query = `SELECT id FROM orders
                   WHERE status=$1 AND payment_status=$2 AND updated_at < $3
                   ORDER BY updated_at
                   LIMIT $4`
	cutoff := time.Now().Add(-olderThan)
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPaid, model.PaymentStatusVerified, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
