package handlers

import (
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/darkbyte-host/storefront/internal/pkg/auth"
	"github.com/darkbyte-host/storefront/internal/server/http/middleware"
)

// CurrentClaims extracts authenticated session claims from context.
func CurrentClaims(c *gin.Context) pkgAuth.Claims {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return pkgAuth.Claims{}
	}
	claims, _ := val.(pkgAuth.Claims)
	return claims
}

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	return CurrentClaims(c).UserID
}
