package app

import (
	"context"
	"time"

	"github.com/darkbyte-host/storefront/internal/domain/model"
	pkgAuth "github.com/darkbyte-host/storefront/internal/pkg/auth"
	"github.com/darkbyte-host/storefront/internal/usecase"
	"github.com/darkbyte-host/storefront/internal/worker"
)

var _ worker.StoreFacade = (*StoreFacade)(nil)

// StoreFacade aggregates the use cases behind a single application surface
// consumed by the HTTP handlers and the reconciliation worker.
type StoreFacade struct {
	auth         *usecase.AuthUseCase
	catalog      *usecase.CatalogUseCase
	orders       *usecase.OrderUseCase
	invoices     *usecase.InvoiceUseCase
	servers      *usecase.ServerUseCase
	verification *usecase.VerificationUseCase
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	invoices *usecase.InvoiceUseCase,
	servers *usecase.ServerUseCase,
	verification *usecase.VerificationUseCase,
) *StoreFacade {
	return &StoreFacade{
		auth:         auth,
		catalog:      catalog,
		orders:       orders,
		invoices:     invoices,
		servers:      servers,
		verification: verification,
	}
}

func (f *StoreFacade) Register(ctx context.Context, email, name, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, name, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListProducts(ctx)
}

func (f *StoreFacade) Checkout(ctx context.Context, userID int64, items []model.CheckoutItem) (*model.Order, error) {
	return f.orders.Checkout(ctx, userID, items)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) Servers(ctx context.Context, userID int64) ([]model.Server, error) {
	return f.servers.ListByUser(ctx, userID)
}

func (f *StoreFacade) Invoices(ctx context.Context, userID int64) ([]model.Invoice, error) {
	return f.invoices.ListByUser(ctx, userID)
}

func (f *StoreFacade) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ListPending(ctx, limit)
}

func (f *StoreFacade) VerifyOrder(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
	return f.verification.Verify(ctx, orderID)
}

func (f *StoreFacade) RejectOrder(ctx context.Context, orderID int64) error {
	return f.verification.Reject(ctx, orderID)
}

func (f *StoreFacade) SuspendServer(ctx context.Context, serverID int64) error {
	return f.servers.Suspend(ctx, serverID)
}

func (f *StoreFacade) ResumeServer(ctx context.Context, serverID int64) error {
	return f.servers.Resume(ctx, serverID)
}

func (f *StoreFacade) StalePaidOrders(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error) {
	return f.orders.StalePaid(ctx, olderThan, limit)
}

func (f *StoreFacade) ResumeOrder(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
	return f.verification.Resume(ctx, orderID)
}

func (f *StoreFacade) ExpiredServers(ctx context.Context, now time.Time, limit int) ([]model.Server, error) {
	return f.servers.ListExpired(ctx, now, limit)
}

func (f *StoreFacade) ExpireServer(ctx context.Context, server model.Server) error {
	return f.servers.Expire(ctx, server)
}
