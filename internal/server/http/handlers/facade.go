package handlers

import (
	"context"

	"github.com/darkbyte-host/storefront/internal/domain/model"
	pkgAuth "github.com/darkbyte-host/storefront/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, name, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
}

// CatalogFacade exposes the public product catalog.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, items []model.CheckoutItem) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
}

// ServerFacade lists the customer's provisioned servers.
type ServerFacade interface {
	Servers(ctx context.Context, userID int64) ([]model.Server, error)
}

// InvoiceFacade lists the customer's invoices.
type InvoiceFacade interface {
	Invoices(ctx context.Context, userID int64) ([]model.Invoice, error)
}

// AdminFacade covers payment verification and server management.
type AdminFacade interface {
	PendingOrders(ctx context.Context, limit int) ([]model.Order, error)
	VerifyOrder(ctx context.Context, orderID int64) (*model.VerificationResult, error)
	RejectOrder(ctx context.Context, orderID int64) error
	SuspendServer(ctx context.Context, serverID int64) error
	ResumeServer(ctx context.Context, serverID int64) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	ServerFacade
	InvoiceFacade
	AdminFacade
}
