package dto

// VerificationResponse reports the outcome of a payment verification run.
type VerificationResponse struct {
	OrderID          int64    `json:"order_id"`
	Success          bool     `json:"success"`
	ServersCreated   int      `json:"servers_created"`
	Errors           []string `json:"errors,omitempty"`
	InvoiceGenerated bool     `json:"invoice_generated"`
	Message          string   `json:"message"`
}
