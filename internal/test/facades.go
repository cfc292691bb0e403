package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/darkbyte-host/storefront/internal/domain/model"
)

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context) ([]model.Product, error)
}

// Products delegates to the configured function or returns a single product.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "Dirt", DurationDays: 30, Active: true}}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, int64, []model.CheckoutItem) (*model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
}

// Checkout delegates to the configured function or returns a default order.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, items []model.CheckoutItem) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, items)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPending}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

// ServerFacadeStub provides controllable behaviour for server listings.
type ServerFacadeStub struct {
	ServersFn func(context.Context, int64) ([]model.Server, error)
}

// Servers returns predefined servers for given user.
func (s ServerFacadeStub) Servers(ctx context.Context, userID int64) ([]model.Server, error) {
	if s.ServersFn != nil {
		return s.ServersFn(ctx, userID)
	}
	return []model.Server{{ID: 1, UserID: userID, Status: model.ServerStatusActive}}, nil
}

// InvoiceFacadeStub provides controllable behaviour for invoice listings.
type InvoiceFacadeStub struct {
	InvoicesFn func(context.Context, int64) ([]model.Invoice, error)
}

// Invoices returns predefined invoices for given user.
func (s InvoiceFacadeStub) Invoices(ctx context.Context, userID int64) ([]model.Invoice, error) {
	if s.InvoicesFn != nil {
		return s.InvoicesFn(ctx, userID)
	}
	return []model.Invoice{{ID: 1, UserID: userID, Number: "DARKBYTE-2025-000001"}}, nil
}

// AdminFacadeStub simulates verification and server management operations.
type AdminFacadeStub struct {
	PendingFn func(context.Context, int) ([]model.Order, error)
	VerifyFn  func(context.Context, int64) (*model.VerificationResult, error)
	RejectFn  func(context.Context, int64) error
	SuspendFn func(context.Context, int64) error
	ResumeFn  func(context.Context, int64) error
}

// PendingOrders returns orders awaiting verification.
func (s AdminFacadeStub) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusPending}}, nil
}

// VerifyOrder runs the configured verification handler.
func (s AdminFacadeStub) VerifyOrder(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderID)
	}
	return &model.VerificationResult{OrderID: orderID, Success: true, ServersCreated: 1, InvoiceGenerated: true}, nil
}

// RejectOrder runs the configured rejection handler.
func (s AdminFacadeStub) RejectOrder(ctx context.Context, orderID int64) error {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, orderID)
	}
	return nil
}

// SuspendServer runs the configured suspension handler.
func (s AdminFacadeStub) SuspendServer(ctx context.Context, serverID int64) error {
	if s.SuspendFn != nil {
		return s.SuspendFn(ctx, serverID)
	}
	return nil
}

// ResumeServer runs the configured resume handler.
func (s AdminFacadeStub) ResumeServer(ctx context.Context, serverID int64) error {
	if s.ResumeFn != nil {
		return s.ResumeFn(ctx, serverID)
	}
	return nil
}

// StoreFacadeStub aggregates the handler-facing stubs for router tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	ServerFacadeStub
	InvoiceFacadeStub
	AdminFacadeStub
}

// ReconcilerFacadeStub mimics worker interactions with the store facade.
type ReconcilerFacadeStub struct {
	StaleBatches   [][]int64
	StaleFn        func(context.Context, time.Duration, int) ([]int64, error)
	ResumeFn       func(context.Context, int64) (*model.VerificationResult, error)
	ExpiredBatches [][]model.Server
	ExpiredFn      func(context.Context, time.Time, int) ([]model.Server, error)
	ExpireFn       func(context.Context, model.Server) error

	Resumed []int64
	Expired []int64

	mu               sync.Mutex
	staleCallCount   int32
	expiredCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// StalePaidOrders returns batches from the configured queue.
func (s *ReconcilerFacadeStub) StalePaidOrders(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, olderThan, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.StaleBatches) {
		return s.StaleBatches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ResumeOrder records resumed order ids.
func (s *ReconcilerFacadeStub) ResumeOrder(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
	if s.ResumeFn != nil {
		return s.ResumeFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resumed = append(s.Resumed, orderID)
	return &model.VerificationResult{OrderID: orderID, Success: true}, nil
}

// ExpiredServers returns batches from the configured queue.
func (s *ReconcilerFacadeStub) ExpiredServers(ctx context.Context, now time.Time, limit int) ([]model.Server, error) {
	if s.ExpiredFn != nil {
		return s.ExpiredFn(ctx, now, limit)
	}
	call := atomic.AddInt32(&s.expiredCallCount, 1)
	if int(call) <= len(s.ExpiredBatches) {
		return s.ExpiredBatches[call-1], nil
	}
	return nil, nil
}

// ExpireServer records expired server ids.
func (s *ReconcilerFacadeStub) ExpireServer(ctx context.Context, server model.Server) error {
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, server)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Expired = append(s.Expired, server.ID)
	return nil
}
