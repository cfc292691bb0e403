package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
)

const invoiceColumns = `id, order_id, user_id, number, customer_name, customer_email, items,
                        subtotal, discount, tax, total, currency, status, due_date, paid_at, created_at`

func (r *invoiceRepository) Insert(ctx context.Context, invoice model.Invoice) (*model.Invoice, error) {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return nil, fmt.Errorf("encode invoice items: %w", err)
	}

	const query = `INSERT INTO invoices (order_id, user_id, number, customer_name, customer_email, items,
                                         subtotal, discount, tax, total, currency, status, due_date, paid_at, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
                   RETURNING id`
	created := invoice
	err = r.storage.pool.QueryRow(ctx, query,
		invoice.OrderID, invoice.UserID, invoice.Number,
		invoice.CustomerName, invoice.CustomerEmail, items,
		invoice.Subtotal, invoice.Discount, invoice.Tax, invoice.Total,
		invoice.Currency.String(), invoice.Status, invoice.DueDate, invoice.PaidAt, invoice.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *invoiceRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id=$1`
	invoice, err := scanInvoice(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepository) ListByUser(ctx context.Context, userID int64) ([]model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanInvoice(row rowScanner) (*model.Invoice, error) {
	var (
		invoice model.Invoice
		items   []byte
		code    string
	)
	err := row.Scan(
		&invoice.ID, &invoice.OrderID, &invoice.UserID, &invoice.Number,
		&invoice.CustomerName, &invoice.CustomerEmail, &items,
		&invoice.Subtotal, &invoice.Discount, &invoice.Tax, &invoice.Total,
		&code, &invoice.Status, &invoice.DueDate, &invoice.PaidAt, &invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &invoice.Items); err != nil {
		return nil, fmt.Errorf("decode invoice items: %w", err)
	}
	unit, err := parseCurrency(code)
	if err != nil {
		return nil, err
	}
	invoice.Currency = unit
	return &invoice, nil
}
