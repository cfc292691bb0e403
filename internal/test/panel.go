package test

import (
	"context"
	"sync"

	"github.com/darkbyte-host/storefront/internal/adapter/panel"
)

// PanelClientStub simulates the panel application API in-memory.
type PanelClientStub struct {
	FindUserFn     func(context.Context, string) (int64, bool, error)
	CreateUserFn   func(context.Context, string, string) (int64, error)
	CreateServerFn func(context.Context, panel.CreateServerRequest) (*panel.CreatedServer, error)
	SuspendFn      func(context.Context, int64) error
	UnsuspendFn    func(context.Context, int64) error

	mu             sync.Mutex
	UsersByEmail   map[string]int64
	NextUserID     int64
	NextServerID   int64
	CreatedServers []panel.CreateServerRequest
	Suspended      []int64
	Unsuspended    []int64
}

// NewPanelClientStub constructs a stub with initialized maps.
func NewPanelClientStub() *PanelClientStub {
	return &PanelClientStub{
		UsersByEmail: make(map[string]int64),
		NextUserID:   100,
		NextServerID: 500,
	}
}

// FindUserIDByEmail reports users previously created through the stub.
func (s *PanelClientStub) FindUserIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	if s.FindUserFn != nil {
		return s.FindUserFn(ctx, email)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.UsersByEmail[email]
	return id, ok, nil
}

// CreateUser registers a panel user with a sequential id.
func (s *PanelClientStub) CreateUser(ctx context.Context, email, name string) (int64, error) {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, email, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.NextUserID
	s.NextUserID++
	s.UsersByEmail[email] = id
	return id, nil
}

// CreateServer records the request and returns a sequential server.
func (s *PanelClientStub) CreateServer(ctx context.Context, req panel.CreateServerRequest) (*panel.CreatedServer, error) {
	if s.CreateServerFn != nil {
		return s.CreateServerFn(ctx, req)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreatedServers = append(s.CreatedServers, req)
	id := s.NextServerID
	s.NextServerID++
	return &panel.CreatedServer{ID: id, Identifier: req.ExternalRef.String()[:8]}, nil
}

// SuspendServer records the suspension.
func (s *PanelClientStub) SuspendServer(ctx context.Context, serverID int64) error {
	if s.SuspendFn != nil {
		return s.SuspendFn(ctx, serverID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Suspended = append(s.Suspended, serverID)
	return nil
}

// UnsuspendServer records the reactivation.
func (s *PanelClientStub) UnsuspendServer(ctx context.Context, serverID int64) error {
	if s.UnsuspendFn != nil {
		return s.UnsuspendFn(ctx, serverID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Unsuspended = append(s.Unsuspended, serverID)
	return nil
}

var _ panel.Client = (*PanelClientStub)(nil)
