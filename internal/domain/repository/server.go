package repository

import (
	"context"
	"time"

	"github.com/darkbyte-host/storefront/internal/domain/model"
)

// ServerRepository stores provisioned server records.
type ServerRepository interface {
	// Create persists a record for a successfully provisioned line item.
	// Returns ErrAlreadyExists when the item already has a server.
	Create(ctx context.Context, server model.Server) (*model.Server, error)

	GetByID(ctx context.Context, id int64) (*model.Server, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Server, error)

	// ProvisionedItemIDs reports which of the given line items already
	// have a server record.
	ProvisionedItemIDs(ctx context.Context, itemIDs []int64) (map[int64]struct{}, error)

	UpdateStatus(ctx context.Context, id int64, status model.ServerStatus) error

	// ListExpirable returns active servers whose expiry passed.
	ListExpirable(ctx context.Context, now time.Time, limit int) ([]model.Server, error)
}
