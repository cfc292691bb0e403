package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/user/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.CheckoutItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.facade.Checkout(c.Request.Context(), userID, items)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrInvalidQuantity), errors.Is(err, domainErrors.ErrProductUnavailable):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Subtotal:      order.Subtotal.Amount.StringFixed(2),
		Discount:      order.Discount.Amount.StringFixed(2),
		Total:         order.Total.Amount.StringFixed(2),
		Currency:      order.Total.Currency.String(),
		CreatedAt:     order.CreatedAt,
	}
}
