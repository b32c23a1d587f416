package sweep

import (
	"context"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database"
	"github.com/pobredward/inschoolz-moderation/internal/setup"
	"github.com/pobredward/inschoolz-moderation/internal/worker/core"
	"go.uber.org/zap"
)

const (
	// DefaultInterval is used when the sweep interval is not configured.
	DefaultInterval = 10 * time.Minute

	// DefaultDeadline bounds one sweep cycle when not configured.
	DefaultDeadline = 5 * time.Minute
)

// Worker periodically restores accounts whose suspension has expired.
type Worker struct {
	db       database.Client
	reporter *core.StatusReporter
	interval time.Duration
	deadline time.Duration
	logger   *zap.Logger
}

// New creates a new sweep worker.
func New(app *setup.App, logger *zap.Logger) *Worker {
	reporter := core.NewStatusReporter(app.StatusClient, "sweep", logger)

	interval := time.Duration(app.Config.Worker.Sweep.Interval) * time.Minute
	if interval <= 0 {
		interval = DefaultInterval
	}

	deadline := time.Duration(app.Config.Worker.Sweep.Deadline) * time.Minute
	if deadline <= 0 {
		deadline = DefaultDeadline
	}

	return &Worker{
		db:       app.DB,
		reporter: reporter,
		interval: interval,
		deadline: deadline,
		logger:   logger,
	}
}

// Start begins the sweep worker's main loop. It runs until the context is
// canceled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Sweep worker started",
		zap.String("workerID", w.reporter.GetWorkerID()),
		zap.Duration("interval", w.interval))
	w.reporter.Start(ctx)

	defer w.reporter.Stop()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run the first cycle immediately
	w.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-ctx.Done():
			w.logger.Info("Sweep worker stopped")
			return
		}
	}
}

// RunOnce executes a single sweep cycle bounded by the configured deadline.
func (w *Worker) RunOnce(ctx context.Context) {
	w.reporter.SetHealthy(true)
	w.reporter.UpdateStatus("Sweeping expired suspensions", 50)

	cycleCtx, cancel := context.WithTimeout(ctx, w.deadline)
	defer cancel()

	summary, err := w.db.Service().Suspension().SweepExpired(cycleCtx, time.Now().UTC())
	if err != nil {
		w.reporter.SetHealthy(false)
		w.logger.Error("Sweep cycle failed",
			zap.Int("totalChecked", summary.TotalChecked),
			zap.Int("unsuspended", summary.Unsuspended),
			zap.Int("failed", summary.Failed),
			zap.Error(err))
		w.reporter.UpdateStatus("Sweep failed", 100)

		return
	}

	if summary.Failed > 0 {
		w.reporter.SetHealthy(false)
	}

	w.logger.Info("Sweep cycle completed",
		zap.Int("totalChecked", summary.TotalChecked),
		zap.Int("unsuspended", summary.Unsuspended),
		zap.Int("failed", summary.Failed),
		zap.Strings("restoredUserIDs", summary.RestoredUserIDs))
	w.reporter.UpdateStatus("Completed", 100)
}
