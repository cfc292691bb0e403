package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	testhelpers "github.com/darkbyte-host/storefront/internal/test"
)

func TestNewReconcilerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rec := NewReconciler(&testhelpers.ReconcilerFacadeStub{}, time.Second, time.Minute, 0, 0, logger)
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
}

func TestReconcilerResumesStaleOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.ReconcilerFacadeStub{StaleBatches: [][]int64{{7, 8}}}
	rec := NewReconciler(facade, 10*time.Millisecond, time.Minute, 2, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Resumed) >= 2
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for order reconciliation")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Resumed) != 2 {
		t.Fatalf("expected 2 resumed orders, got %d", len(facade.Resumed))
	}
}

func TestReconcilerExpiresServers(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.ReconcilerFacadeStub{
		ExpiredBatches: [][]model.Server{{{ID: 11, Status: model.ServerStatusActive}}},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, time.Minute, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Expired) > 0
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for server expiry")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if facade.Expired[0] != 11 {
		t.Fatalf("expected server 11 to expire, got %d", facade.Expired[0])
	}
}

func TestReconcilerSkipsFinishedOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	var resumeCalls int32
	facade := &testhelpers.ReconcilerFacadeStub{
		StaleBatches: [][]int64{{5}},
		ResumeFn: func(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
			atomic.AddInt32(&resumeCalls, 1)
			return nil, domainErrors.ErrAlreadyVerified
		},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, time.Minute, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&resumeCalls) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for resume attempt")
		case <-time.After(10 * time.Millisecond):
		}
	}
	rec.Stop()
}

func TestReconcilerLogsSweepErrors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	var staleCalls int32
	facade := &testhelpers.ReconcilerFacadeStub{
		StaleFn: func(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error) {
			atomic.AddInt32(&staleCalls, 1)
			return nil, errors.New("db down")
		},
		ExpiredFn: func(ctx context.Context, now time.Time, limit int) ([]model.Server, error) {
			return nil, errors.New("db down")
		},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, time.Minute, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for atomic.LoadInt32(&staleCalls) == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep")
		case <-time.After(10 * time.Millisecond):
		}
	}
	rec.Stop()
}
