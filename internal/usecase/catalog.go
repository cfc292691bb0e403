package usecase

import (
	"context"

	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/domain/repository"
)

// CatalogUseCase exposes the hosting plan catalog.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// ListProducts returns plans currently offered for sale.
func (u *CatalogUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	return u.products.ListActive(ctx)
}
