package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/observability"
	"github.com/ayo6706/wallet-ledger/internal/service"
)

// ReconciliationWorker periodically verifies balances against the
// completed ledger. Read-only; safe to run alongside live traffic.
type ReconciliationWorker struct {
	svc          *service.ReconciliationService
	pollInterval time.Duration
	stopCh       chan struct{}
}

func NewReconciliationWorker(svc *service.ReconciliationService) *ReconciliationWorker {
	return &ReconciliationWorker{
		svc:          svc,
		pollInterval: time.Hour,
		stopCh:       make(chan struct{}),
	}
}

// WithPollInterval sets how often reconciliation runs.
func (w *ReconciliationWorker) WithPollInterval(interval time.Duration) *ReconciliationWorker {
	if interval > 0 {
		w.pollInterval = interval
	}
	return w
}

// Start runs the worker loop until Stop is called or the context ends.
func (w *ReconciliationWorker) Start(ctx context.Context) {
	zap.L().Info("reconciliation worker starting", zap.Duration("interval", w.pollInterval))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// Stop signals the worker to stop.
func (w *ReconciliationWorker) Stop() {
	close(w.stopCh)
}

// Run starts the worker in a goroutine and returns its stop function.
func (w *ReconciliationWorker) Run(ctx context.Context) func() {
	go w.Start(ctx)
	return w.Stop
}

// ProcessOnce runs a single reconciliation pass immediately.
func (w *ReconciliationWorker) ProcessOnce(ctx context.Context) error {
	return w.svc.Run(ctx)
}

func (w *ReconciliationWorker) runOnce(ctx context.Context) {
	if err := w.svc.Run(ctx); err != nil {
		observability.IncrementWorkerRun("reconciliation", "error")
		zap.L().Error("reconciliation run failed", zap.Error(err))
		return
	}
	observability.IncrementWorkerRun("reconciliation", "ok")
}
