package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
)

// StoreFacade exposes the subset of application functionality required by
// the reconciliation sweep.
type StoreFacade interface {
	StalePaidOrders(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error)
	ResumeOrder(ctx context.Context, orderID int64) (*model.VerificationResult, error)
	ExpiredServers(ctx context.Context, now time.Time, limit int) ([]model.Server, error)
	ExpireServer(ctx context.Context, server model.Server) error
}

// job is one unit of sweep work: exactly one of the fields is set.
type job struct {
	orderID int64
	server  *model.Server
}

// Reconciler periodically finishes verification runs that died after the
// payment claim and suspends servers whose paid period ran out.
type Reconciler struct {
	facade        StoreFacade
	sweepInterval time.Duration
	staleAfter    time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan job
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the sweep worker pool.
func NewReconciler(facade StoreFacade, sweepInterval, staleAfter time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:        facade,
		sweepInterval: sweepInterval,
		staleAfter:    staleAfter,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan job, 2*batchSize*workers),
	}
}

// Start launches background sweeping.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reconciler) sweep(ctx context.Context) {
	orderIDs, err := r.facade.StalePaidOrders(ctx, r.staleAfter, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale paid orders failed", slog.String("error", err.Error()))
	}
	for _, id := range orderIDs {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- job{orderID: id}:
		}
	}

	servers, err := r.facade.ExpiredServers(ctx, time.Now(), r.batchSize)
	if err != nil {
		r.logger.Error("fetch expired servers failed", slog.String("error", err.Error()))
	}
	for i := range servers {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- job{server: &servers[i]}:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handle(ctx, j)
		}
	}
}

func (r *Reconciler) handle(ctx context.Context, j job) {
	if j.server != nil {
		if err := r.facade.ExpireServer(ctx, *j.server); err != nil {
			r.logger.Error("expire server failed",
				slog.Int64("server_id", j.server.ID),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	result, err := r.facade.ResumeOrder(ctx, j.orderID)
	if err != nil {
		// Another writer finished the order between the scan and now.
		if errors.Is(err, domainErrors.ErrAlreadyVerified) || errors.Is(err, domainErrors.ErrNotFound) {
			return
		}
		r.logger.Error("resume order failed",
			slog.Int64("order_id", j.orderID),
			slog.String("error", err.Error()),
		)
		return
	}
	r.logger.Info("order reconciled",
		slog.Int64("order_id", j.orderID),
		slog.Int("servers_created", result.ServersCreated),
		slog.Int("failures", len(result.Errors)),
	)
}
