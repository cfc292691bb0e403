package model

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// InvoiceStatus describes payment state of an invoice document.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// InvoiceItem is a sanitized, denormalized line of an invoice document,
// persisted as part of the invoice itself.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Invoice is a point-in-time financial document derived from exactly one
// completed order. It references order and user by id only and is never
// mutated by the verification workflow after creation.
type Invoice struct {
	ID            int64
	OrderID       int64
	UserID        int64
	Number        string
	CustomerName  string
	CustomerEmail string
	Items         []InvoiceItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Currency      currency.Unit
	Status        InvoiceStatus
	DueDate       time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
}
