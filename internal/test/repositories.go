package test

import (
	"context"
	"time"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, name, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Name: name, PasswordHash: passwordHash}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub serves a fixed catalog for tests.
type ProductRepositoryStub struct {
	ListActiveFn func(context.Context) ([]model.Product, error)
	GetByIDsFn   func(context.Context, []int64) (map[int64]model.Product, error)
	Products     []model.Product
}

// ListActive returns the configured catalog.
func (s *ProductRepositoryStub) ListActive(ctx context.Context) ([]model.Product, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx)
	}
	return s.Products, nil
}

// GetByIDs maps requested ids to configured products.
func (s *ProductRepositoryStub) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	if s.GetByIDsFn != nil {
		return s.GetByIDsFn(ctx, ids)
	}
	byID := make(map[int64]model.Product)
	for _, p := range s.Products {
		byID[p.ID] = p
	}
	result := make(map[int64]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn            func(context.Context, model.Order, []model.OrderItem) (*model.Order, error)
	GetDetailsFn        func(context.Context, int64) (*model.OrderDetails, error)
	ListByUserFn        func(context.Context, int64) ([]model.Order, error)
	ListByStatusFn      func(context.Context, model.OrderStatus, int) ([]model.Order, error)
	ClaimVerificationFn func(context.Context, int64) (bool, error)
	ClaimRejectionFn    func(context.Context, int64) (bool, error)
	SetStatusFn         func(context.Context, int64, model.OrderStatus) error
	ListStalePaidFn     func(context.Context, time.Duration, int) ([]int64, error)

	Details     *model.OrderDetails
	Orders      []model.Order
	StatusCalls []OrderStatusCall
}

// OrderStatusCall records a SetStatus invocation.
type OrderStatusCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// Create returns the order with an id assigned, or delegates to override.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order, items []model.OrderItem) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, items)
	}
	created := order
	created.ID = 1
	created.Status = model.OrderStatusPending
	created.PaymentStatus = model.PaymentStatusPending
	return &created, nil
}

// GetDetails returns the configured snapshot or not found.
func (s *OrderRepositoryStub) GetDetails(ctx context.Context, orderID int64) (*model.OrderDetails, error) {
	if s.GetDetailsFn != nil {
		return s.GetDetailsFn(ctx, orderID)
	}
	if s.Details != nil && s.Details.ID == orderID {
		snapshot := *s.Details
		return &snapshot, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from the configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// ListByStatus returns orders from the configured slice.
func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if s.ListByStatusFn != nil {
		return s.ListByStatusFn(ctx, status, limit)
	}
	return s.Orders, nil
}

// ClaimVerification wins by default.
func (s *OrderRepositoryStub) ClaimVerification(ctx context.Context, orderID int64) (bool, error) {
	if s.ClaimVerificationFn != nil {
		return s.ClaimVerificationFn(ctx, orderID)
	}
	return true, nil
}

// ClaimRejection wins by default.
func (s *OrderRepositoryStub) ClaimRejection(ctx context.Context, orderID int64) (bool, error) {
	if s.ClaimRejectionFn != nil {
		return s.ClaimRejectionFn(ctx, orderID)
	}
	return true, nil
}

// SetStatus records status updates.
func (s *OrderRepositoryStub) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, orderID, status)
	}
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: orderID, Status: status})
	return nil
}

// ListStalePaid returns ids via override or nothing.
func (s *OrderRepositoryStub) ListStalePaid(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error) {
	if s.ListStalePaidFn != nil {
		return s.ListStalePaidFn(ctx, olderThan, limit)
	}
	return nil, nil
}

// ServerRepositoryStub stores provisioned server records in-memory.
type ServerRepositoryStub struct {
	CreateFn       func(context.Context, model.Server) (*model.Server, error)
	UpdateStatusFn func(context.Context, int64, model.ServerStatus) error

	Servers map[int64]*model.Server
	ByItem  map[int64]*model.Server
	Next    int64
	Err     error
}

// NewServerRepositoryStub constructs stub repository with initialized maps.
func NewServerRepositoryStub() *ServerRepositoryStub {
	return &ServerRepositoryStub{
		Servers: make(map[int64]*model.Server),
		ByItem:  make(map[int64]*model.Server),
		Next:    1,
	}
}

// Create stores a server record keyed by id and line item.
func (s *ServerRepositoryStub) Create(ctx context.Context, server model.Server) (*model.Server, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, server)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByItem[server.OrderItemID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	created := server
	created.ID = s.Next
	s.Next++
	s.Servers[created.ID] = &created
	s.ByItem[created.OrderItemID] = &created
	return &created, nil
}

// GetByID fetches a server or returns not found.
func (s *ServerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Server, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if server, ok := s.Servers[id]; ok {
		return server, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns stored servers belonging to the user.
func (s *ServerRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Server, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Server
	for _, server := range s.Servers {
		if server.UserID == userID {
			result = append(result, *server)
		}
	}
	return result, nil
}

// ProvisionedItemIDs reports stored line item ids.
func (s *ServerRepositoryStub) ProvisionedItemIDs(ctx context.Context, itemIDs []int64) (map[int64]struct{}, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make(map[int64]struct{})
	for _, id := range itemIDs {
		if _, ok := s.ByItem[id]; ok {
			result[id] = struct{}{}
		}
	}
	return result, nil
}

// UpdateStatus mutates a stored server or returns not found.
func (s *ServerRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.ServerStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	server, ok := s.Servers[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	server.Status = status
	return nil
}

// ListExpirable returns active servers whose expiry is before now.
func (s *ServerRepositoryStub) ListExpirable(ctx context.Context, now time.Time, limit int) ([]model.Server, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Server
	for _, server := range s.Servers {
		if server.Status == model.ServerStatusActive && server.ExpiresAt.Before(now) {
			result = append(result, *server)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// InvoiceRepositoryStub stores invoices in-memory with order uniqueness.
type InvoiceRepositoryStub struct {
	InsertFn func(context.Context, model.Invoice) (*model.Invoice, error)
	CountFn  func(context.Context) (int64, error)

	ByOrder map[int64]*model.Invoice
	Next    int64
	Total   int64
	Err     error
}

// NewInvoiceRepositoryStub constructs stub repository with initialized maps.
func NewInvoiceRepositoryStub() *InvoiceRepositoryStub {
	return &InvoiceRepositoryStub{ByOrder: make(map[int64]*model.Invoice), Next: 1}
}

// Insert stores the invoice, enforcing one per order.
func (s *InvoiceRepositoryStub) Insert(ctx context.Context, invoice model.Invoice) (*model.Invoice, error) {
	if s.InsertFn != nil {
		return s.InsertFn(ctx, invoice)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByOrder[invoice.OrderID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	created := invoice
	created.ID = s.Next
	s.Next++
	s.Total++
	s.ByOrder[created.OrderID] = &created
	return &created, nil
}

// GetByOrder fetches the stored invoice or not found.
func (s *InvoiceRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if invoice, ok := s.ByOrder[orderID]; ok {
		return invoice, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns stored invoices belonging to the user.
func (s *InvoiceRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Invoice, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Invoice
	for _, invoice := range s.ByOrder {
		if invoice.UserID == userID {
			result = append(result, *invoice)
		}
	}
	return result, nil
}

// Count returns the configured total.
func (s *InvoiceRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Total, nil
}
