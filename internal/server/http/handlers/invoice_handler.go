package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/server/http/dto"
)

// InvoiceHandler serves the customer's billing documents.
type InvoiceHandler struct {
	facade InvoiceFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// List handles GET /api/user/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	invoices, err := h.facade.Invoices(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(invoices) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		response = append(response, toInvoiceResponse(inv))
	}
	c.JSON(http.StatusOK, response)
}

func toInvoiceResponse(inv model.Invoice) dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}
	return dto.InvoiceResponse{
		ID:        inv.ID,
		OrderID:   inv.OrderID,
		Number:    inv.Number,
		Status:    string(inv.Status),
		Items:     items,
		Subtotal:  inv.Subtotal.StringFixed(2),
		Discount:  inv.Discount.StringFixed(2),
		Tax:       inv.Tax.StringFixed(2),
		Total:     inv.Total.StringFixed(2),
		Currency:  inv.Currency.String(),
		DueDate:   inv.DueDate,
		PaidAt:    inv.PaidAt,
		CreatedAt: inv.CreatedAt,
	}
}
