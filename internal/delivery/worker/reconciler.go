// Package worker contains background deliveries that run alongside the API server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"depot/config"
	"depot/internal/delivery"
	"depot/internal/usecase"

	"go.uber.org/fx"
)

type reconcileWorker struct {
	cfg          *config.Config
	logger       *slog.Logger
	brandUsecase usecase.BrandUsecase
	stop         chan struct{}
}

// ReconcilerParams holds dependencies for the reconciliation worker
type ReconcilerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	BrandUsecase usecase.BrandUsecase
}

// NewReconciler creates the periodic product-count reconciliation worker
func NewReconciler(params ReconcilerParams) (delivery.Delivery, error) {
	w := &reconcileWorker{
		cfg:          params.Cfg,
		logger:       params.Logger,
		brandUsecase: params.BrandUsecase,
		stop:         make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: w.shutdown,
	})

	return w, nil
}

// Serve runs the reconciliation sweep on a fixed interval until shut down.
// The first sweep runs immediately so drift left by a crash is repaired on boot.
func (w *reconcileWorker) Serve(ctx context.Context) error {
	if !w.cfg.Reconcile.Enabled {
		w.logger.Info("Reconciliation worker disabled")
		return nil
	}

	w.logger.Info("Starting reconciliation worker",
		slog.Duration("interval", w.cfg.Reconcile.Interval))

	ticker := time.NewTicker(w.cfg.Reconcile.Interval)
	defer ticker.Stop()

	for {
		w.runOnce(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-w.stop:
			return nil
		case <-ticker.C:
		}
	}
}

// runOnce performs a single sweep. Failures are logged and retried on the next
// tick rather than bringing the worker down.
func (w *reconcileWorker) runOnce(ctx context.Context) {
	out, err := w.brandUsecase.ReconcileProductCounts(ctx)
	if err != nil {
		w.logger.Warn("Reconciliation sweep failed", slog.Any("error", err))

		return
	}

	w.logger.Debug("Reconciliation sweep finished",
		slog.Int("checked", out.Checked),
		slog.Int("repaired", out.Repaired),
		slog.Int("deleted", out.Deleted),
	)
}

func (w *reconcileWorker) shutdown(_ context.Context) error {
	w.logger.Info("Shutting down reconciliation worker")
	close(w.stop)

	return nil
}
