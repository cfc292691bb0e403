package dto

import "time"

// InvoiceItemResponse is one invoice line.
type InvoiceItemResponse struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// InvoiceResponse describes a billing document.
type InvoiceResponse struct {
	ID        int64                 `json:"id"`
	OrderID   int64                 `json:"order_id"`
	Number    string                `json:"number"`
	Status    string                `json:"status"`
	Items     []InvoiceItemResponse `json:"items"`
	Subtotal  string                `json:"subtotal"`
	Discount  string                `json:"discount"`
	Tax       string                `json:"tax"`
	Total     string                `json:"total"`
	Currency  string                `json:"currency"`
	DueDate   time.Time             `json:"due_date"`
	PaidAt    *time.Time            `json:"paid_at,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}
