package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/darkbyte-host/storefront/internal/adapter/panel"
	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	"github.com/darkbyte-host/storefront/internal/domain/repository"
)

// VerificationUseCase drives the admin verification workflow: claim the
// pending payment, provision one server per line item through the panel,
// finalize the order and generate the invoice.
type VerificationUseCase struct {
	orders   repository.OrderRepository
	servers  repository.ServerRepository
	invoices *InvoiceGenerator
	panel    panel.Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewVerificationUseCase constructs VerificationUseCase.
func NewVerificationUseCase(
	orders repository.OrderRepository,
	servers repository.ServerRepository,
	invoices *InvoiceGenerator,
	client panel.Client,
	logger *slog.Logger,
) *VerificationUseCase {
	return &VerificationUseCase{
		orders:   orders,
		servers:  servers,
		invoices: invoices,
		panel:    client,
		logger:   logger,
		now:      time.Now,
	}
}

// Verify runs the full workflow for one order. Returns ErrNotFound for an
// unknown order and ErrAlreadyVerified when the payment is no longer
// pending; any other failure after the claim still completes the order.
func (u *VerificationUseCase) Verify(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
	details, err := u.orders.GetDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}

	claimed, err := u.orders.ClaimVerification(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, domainErrors.ErrAlreadyVerified
	}
	details.PaymentStatus = model.PaymentStatusVerified
	details.Status = model.OrderStatusPaid

	return u.finish(ctx, details)
}

// Resume re-runs provisioning and invoicing for an order stuck in paid
// state, skipping line items that already have a server. Used by the
// reconciliation sweep after a crash mid-verification.
func (u *VerificationUseCase) Resume(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
	details, err := u.orders.GetDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if details.Status != model.OrderStatusPaid || details.PaymentStatus != model.PaymentStatusVerified {
		return nil, domainErrors.ErrAlreadyVerified
	}
	return u.finish(ctx, details)
}

// Reject marks a pending payment as failed and cancels the order. Nothing
// is provisioned and no invoice is generated.
func (u *VerificationUseCase) Reject(ctx context.Context, orderID int64) error {
	if _, err := u.orders.GetDetails(ctx, orderID); err != nil {
		return err
	}
	claimed, err := u.orders.ClaimRejection(ctx, orderID)
	if err != nil {
		return err
	}
	if !claimed {
		return domainErrors.ErrAlreadyVerified
	}
	u.logger.Info("order rejected", "order_id", orderID)
	return nil
}

func (u *VerificationUseCase) finish(ctx context.Context, details *model.OrderDetails) (*model.VerificationResult, error) {
	result := &model.VerificationResult{OrderID: details.ID}

	created, provisionErrors := u.provision(ctx, details)
	result.ServersCreated = created
	result.Errors = provisionErrors

	// The order completes even when items failed: failures are reported
	// to the admin, who retries or refunds out of band.
	if err := u.orders.SetStatus(ctx, details.ID, model.OrderStatusCompleted); err != nil {
		return nil, err
	}
	details.Status = model.OrderStatusCompleted

	if _, generated, err := u.invoices.Generate(ctx, details); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("invoice: %v", err))
	} else {
		result.InvoiceGenerated = generated
	}

	result.Success = len(result.Errors) == 0
	if result.Success {
		result.Message = fmt.Sprintf("order %d verified, %d servers created", details.ID, created)
	} else {
		result.Message = fmt.Sprintf("order %d verified with %d failures, %d servers created", details.ID, len(result.Errors), created)
	}

	u.logger.Info("verification finished",
		"order_id", details.ID,
		"servers_created", created,
		"failures", len(result.Errors),
		"invoice_generated", result.InvoiceGenerated,
	)
	return result, nil
}

// provision creates one server per line item. Items that already carry a
// server record are skipped, making re-runs idempotent.
func (u *VerificationUseCase) provision(ctx context.Context, details *model.OrderDetails) (int, []string) {
	itemIDs := make([]int64, 0, len(details.Items))
	for _, item := range details.Items {
		itemIDs = append(itemIDs, item.ID)
	}
	done, err := u.servers.ProvisionedItemIDs(ctx, itemIDs)
	if err != nil {
		return 0, []string{fmt.Sprintf("load provisioned items: %v", err)}
	}

	panelUserID := int64(0)
	created := 0
	var failures []string
	for _, item := range details.Items {
		if _, ok := done[item.ID]; ok {
			continue
		}

		if panelUserID == 0 {
			panelUserID, err = u.ensurePanelUser(ctx, details.User)
			if err != nil {
				failures = append(failures, fmt.Sprintf("item %d: panel user: %v", item.ID, err))
				continue
			}
		}

		server, err := u.createServer(ctx, panelUserID, details, item)
		if err != nil {
			failures = append(failures, fmt.Sprintf("item %d: %v", item.ID, err))
			continue
		}
		u.logger.Info("server provisioned",
			"order_id", details.ID,
			"item_id", item.ID,
			"server_id", server.ID,
			"panel_id", server.PanelID,
		)
		created++
	}
	return created, failures
}

func (u *VerificationUseCase) ensurePanelUser(ctx context.Context, user model.User) (int64, error) {
	id, found, err := u.panel.FindUserIDByEmail(ctx, user.Email)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}
	return u.panel.CreateUser(ctx, user.Email, user.Name)
}

func (u *VerificationUseCase) createServer(ctx context.Context, panelUserID int64, details *model.OrderDetails, item model.OrderItemDetails) (*model.Server, error) {
	ref := uuid.New()
	req := panel.CreateServerRequest{
		UserID:      panelUserID,
		Name:        fmt.Sprintf("%s for %s", item.Product.Name, details.User.Name),
		ExternalRef: ref,
		RAMMB:       item.Product.RAMMB,
		CPUPercent:  item.Product.CPUPercent,
		DiskMB:      item.Product.DiskMB,
	}
	provisioned, err := u.panel.CreateServer(ctx, req)
	if err != nil {
		return nil, err
	}

	server := model.Server{
		UserID:          details.UserID,
		ProductID:       item.ProductID,
		OrderItemID:     item.ID,
		PanelID:         provisioned.ID,
		PanelIdentifier: provisioned.Identifier,
		ExternalRef:     ref,
		Name:            req.Name,
		Status:          model.ServerStatusActive,
		ExpiresAt:       u.now().Add(time.Duration(item.Product.DurationDays) * 24 * time.Hour),
	}
	return u.servers.Create(ctx, server)
}
