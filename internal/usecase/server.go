package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/darkbyte-host/storefront/internal/adapter/panel"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/domain/repository"
)

// ServerUseCase manages provisioned servers after the fact: customer
// listings plus admin suspend/resume and expiry performed through the
// panel.
type ServerUseCase struct {
	servers repository.ServerRepository
	panel   panel.Client
	logger  *slog.Logger
}

// NewServerUseCase constructs ServerUseCase.
func NewServerUseCase(servers repository.ServerRepository, client panel.Client, logger *slog.Logger) *ServerUseCase {
	return &ServerUseCase{servers: servers, panel: client, logger: logger}
}

// ListByUser returns the customer's servers, newest first.
func (u *ServerUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Server, error) {
	return u.servers.ListByUser(ctx, userID)
}

// Suspend stops a server on the panel and records the new status. The
// local status only changes after the panel call succeeds.
func (u *ServerUseCase) Suspend(ctx context.Context, serverID int64) error {
	server, err := u.servers.GetByID(ctx, serverID)
	if err != nil {
		return err
	}
	if server.Status == model.ServerStatusSuspended {
		return nil
	}
	if err := u.panel.SuspendServer(ctx, server.PanelID); err != nil {
		return fmt.Errorf("suspend server %d on panel: %w", server.PanelID, err)
	}
	return u.servers.UpdateStatus(ctx, serverID, model.ServerStatusSuspended)
}

// Resume reactivates a suspended server on the panel.
func (u *ServerUseCase) Resume(ctx context.Context, serverID int64) error {
	server, err := u.servers.GetByID(ctx, serverID)
	if err != nil {
		return err
	}
	if server.Status == model.ServerStatusActive {
		return nil
	}
	if err := u.panel.UnsuspendServer(ctx, server.PanelID); err != nil {
		return fmt.Errorf("unsuspend server %d on panel: %w", server.PanelID, err)
	}
	return u.servers.UpdateStatus(ctx, serverID, model.ServerStatusActive)
}

// ListExpired returns active servers whose paid period ran out.
func (u *ServerUseCase) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Server, error) {
	return u.servers.ListExpirable(ctx, now, limit)
}

// Expire suspends a run-out server on the panel and marks it expired.
func (u *ServerUseCase) Expire(ctx context.Context, server model.Server) error {
	if err := u.panel.SuspendServer(ctx, server.PanelID); err != nil {
		return fmt.Errorf("suspend expired server %d on panel: %w", server.PanelID, err)
	}
	if err := u.servers.UpdateStatus(ctx, server.ID, model.ServerStatusExpired); err != nil {
		return err
	}
	u.logger.Info("server expired", "server_id", server.ID, "panel_id", server.PanelID)
	return nil
}
