package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/darkbyte-host/storefront/internal/config"
	"github.com/darkbyte-host/storefront/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewOrderUseCase,
	NewInvoiceUseCase,
	NewServerUseCase,
	NewVerificationUseCase,
	newInvoiceGenerator,
)

func newInvoiceGenerator(invoices repository.InvoiceRepository, cfg *config.Config, logger *slog.Logger) *InvoiceGenerator {
	return NewInvoiceGenerator(invoices, cfg.InvoicePrefix, logger)
}
