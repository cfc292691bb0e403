package repository

import (
	"context"

	"github.com/darkbyte-host/storefront/internal/domain/model"
)

// ProductRepository provides read access to the hosting plan catalog.
type ProductRepository interface {
	ListActive(ctx context.Context) ([]model.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)
}
