package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/darkbyte-host/storefront/internal/pkg/auth"
)

// RequestLogger logs each request with latency and, once authentication
// middleware ran, the acting user.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if raw, ok := c.Get(ClaimsContextKey); ok {
			if claims, ok := raw.(pkgAuth.Claims); ok {
				attrs = append(attrs, slog.Int64("user_id", claims.UserID))
			}
		}
		logger.Info("http request", attrs...)
	}
}
