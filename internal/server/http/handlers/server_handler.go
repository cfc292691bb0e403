package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/server/http/dto"
)

// ServerHandler serves the customer's provisioned servers.
type ServerHandler struct {
	facade ServerFacade
}

// NewServerHandler constructs ServerHandler.
func NewServerHandler(facade ServerFacade) *ServerHandler {
	return &ServerHandler{facade: facade}
}

// List handles GET /api/user/servers.
func (h *ServerHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	servers, err := h.facade.Servers(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(servers) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ServerResponse, 0, len(servers))
	for _, s := range servers {
		response = append(response, toServerResponse(s))
	}
	c.JSON(http.StatusOK, response)
}

func toServerResponse(s model.Server) dto.ServerResponse {
	return dto.ServerResponse{
		ID:         s.ID,
		Name:       s.Name,
		Identifier: s.PanelIdentifier,
		Status:     string(s.Status),
		ExpiresAt:  s.ExpiresAt,
		CreatedAt:  s.CreatedAt,
	}
}
