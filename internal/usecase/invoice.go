package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/domain/repository"
)

const (
	// invoiceDueGrace is how long after order creation payment is due.
	invoiceDueGrace = 7 * 24 * time.Hour

	maxItemDescription = 200
)

// InvoiceGenerator derives invoice documents from order snapshots. An
// order gets at most one invoice; repeated generation returns the
// existing document unchanged.
type InvoiceGenerator struct {
	invoices repository.InvoiceRepository
	prefix   string
	logger   *slog.Logger
	now      func() time.Time
}

// NewInvoiceGenerator constructs InvoiceGenerator with the configured
// number prefix.
func NewInvoiceGenerator(invoices repository.InvoiceRepository, prefix string, logger *slog.Logger) *InvoiceGenerator {
	return &InvoiceGenerator{invoices: invoices, prefix: prefix, logger: logger, now: time.Now}
}

// Generate creates the invoice for an order, or returns the existing one.
// The second return value reports whether a new document was created.
func (g *InvoiceGenerator) Generate(ctx context.Context, details *model.OrderDetails) (*model.Invoice, bool, error) {
	existing, err := g.invoices.GetByOrder(ctx, details.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, false, err
	}

	invoice, err := g.build(ctx, details)
	if err != nil {
		g.logger.Error("invoice generation failed", "order_id", details.ID, "error", err)
		return nil, false, err
	}

	created, err := g.invoices.Insert(ctx, *invoice)
	if err != nil {
		// A concurrent generator won the insert; its document is the one.
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			existing, getErr := g.invoices.GetByOrder(ctx, details.ID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		g.logger.Error("invoice persistence failed", "order_id", details.ID, "error", err)
		return nil, false, err
	}
	return created, true, nil
}

func (g *InvoiceGenerator) build(ctx context.Context, details *model.OrderDetails) (*model.Invoice, error) {
	if !ValidEmail(details.User.Email) {
		return nil, fmt.Errorf("%w: bad customer email", domainErrors.ErrInvalidInvoice)
	}
	if len(details.Items) == 0 {
		return nil, fmt.Errorf("%w: no items", domainErrors.ErrInvalidInvoice)
	}
	if details.Subtotal.IsNegative() || details.Discount.IsNegative() || details.Total.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount", domainErrors.ErrInvalidInvoice)
	}

	items := make([]model.InvoiceItem, 0, len(details.Items))
	for _, item := range details.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q has quantity %d", domainErrors.ErrInvalidInvoice, item.Name, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %q has negative price", domainErrors.ErrInvalidInvoice, item.Name)
		}
		description := item.Name
		if runes := []rune(description); len(runes) > maxItemDescription {
			description = string(runes[:maxItemDescription])
		}
		items = append(items, model.InvoiceItem{
			Description: description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount,
			LineTotal:   item.UnitPrice.MulInt(item.Quantity).Amount,
		})
	}

	number, err := g.nextNumber(ctx)
	if err != nil {
		return nil, err
	}

	createdAt := g.now()
	invoice := &model.Invoice{
		OrderID:       details.ID,
		UserID:        details.UserID,
		Number:        number,
		CustomerName:  details.User.Name,
		CustomerEmail: details.User.Email,
		Items:         items,
		Subtotal:      details.Subtotal.Amount,
		Discount:      details.Discount.Amount,
		Tax:           decimal.Zero,
		Total:         details.Total.Amount,
		Currency:      details.Total.Currency,
		Status:        model.InvoiceStatusPending,
		DueDate:       details.CreatedAt.Add(invoiceDueGrace),
		CreatedAt:     createdAt,
	}
	if details.PaymentStatus == model.PaymentStatusVerified {
		invoice.Status = model.InvoiceStatusPaid
		invoice.PaidAt = &createdAt
	}
	return invoice, nil
}

// nextNumber derives a sequential number from the current invoice count.
// Two concurrent generators can derive the same number; the unique
// constraint on the column rejects the loser, who then falls back to the
// winner's document.
func (g *InvoiceGenerator) nextNumber(ctx context.Context) (string, error) {
	count, err := g.invoices.Count(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%06d", g.prefix, g.now().Year(), count+1), nil
}

// InvoiceUseCase exposes read access to generated invoices.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(invoices repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices}
}

// ListByUser returns the customer's invoices, newest first.
func (u *InvoiceUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Invoice, error) {
	return u.invoices.ListByUser(ctx, userID)
}
