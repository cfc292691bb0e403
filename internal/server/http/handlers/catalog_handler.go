package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/server/http/dto"
)

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.Amount.StringFixed(2),
		Currency:     p.Price.Currency.String(),
		RAMMB:        p.RAMMB,
		CPUPercent:   p.CPUPercent,
		DiskMB:       p.DiskMB,
		DurationDays: p.DurationDays,
	}
}
