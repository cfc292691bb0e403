package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/server/http/dto"
)

const defaultPendingLimit = 50

// AdminHandler manages payment verification and server administration.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// PendingOrders handles GET /api/admin/orders.
func (h *AdminHandler) PendingOrders(c *gin.Context) {
	limit := defaultPendingLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	orders, err := h.facade.PendingOrders(c.Request.Context(), limit)
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

// Verify handles POST /api/admin/orders/:id/verify.
func (h *AdminHandler) Verify(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.facade.VerifyOrder(c.Request.Context(), orderID)
	if err != nil {
		verificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVerificationResponse(result))
}

// Reject handles POST /api/admin/orders/:id/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.facade.RejectOrder(c.Request.Context(), orderID); err != nil {
		verificationError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// SuspendServer handles POST /api/admin/servers/:id/suspend.
func (h *AdminHandler) SuspendServer(c *gin.Context) {
	serverID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.facade.SuspendServer(c.Request.Context(), serverID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// ResumeServer handles POST /api/admin/servers/:id/resume.
func (h *AdminHandler) ResumeServer(c *gin.Context) {
	serverID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.facade.ResumeServer(c.Request.Context(), serverID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func verificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrAlreadyVerified):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toVerificationResponse(result *model.VerificationResult) dto.VerificationResponse {
	return dto.VerificationResponse{
		OrderID:          result.OrderID,
		Success:          result.Success,
		ServersCreated:   result.ServersCreated,
		Errors:           result.Errors,
		InvoiceGenerated: result.InvoiceGenerated,
		Message:          result.Message,
	}
}
