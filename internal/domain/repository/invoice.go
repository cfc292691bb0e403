package repository

import (
	"context"

	"github.com/darkbyte-host/storefront/internal/domain/model"
)

// InvoiceRepository stores generated invoice documents.
type InvoiceRepository interface {
	// Insert persists an invoice. The order id carries a unique constraint,
	// so a concurrent duplicate surfaces as ErrAlreadyExists instead of a
	// second document.
	Insert(ctx context.Context, invoice model.Invoice) (*model.Invoice, error)

	GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Invoice, error)

	// Count returns the total number of invoices, the input for sequential
	// invoice numbering.
	Count(ctx context.Context) (int64, error)
}
