package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/darkbyte-host/storefront/internal/server/http/handlers"
	"github.com/darkbyte-host/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	serverHandler := handlers.NewServerHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	api.GET("/products", catalogHandler.List)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/orders", orderHandler.Checkout)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/servers", serverHandler.List)
	userAuth.GET("/invoices", invoiceHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.GET("/orders", adminHandler.PendingOrders)
	admin.POST("/orders/:id/verify", adminHandler.Verify)
	admin.POST("/orders/:id/reject", adminHandler.Reject)
	admin.POST("/servers/:id/suspend", adminHandler.SuspendServer)
	admin.POST("/servers/:id/resume", adminHandler.ResumeServer)

	return engine
}
