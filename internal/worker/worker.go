// Package worker runs the nightly regeneration sweep that keeps every
// active series topped up with instances over the configured horizon.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tracklawn/scheduler/internal/logger"
)

// sweepTimeout bounds a single regeneration sweep.
const sweepTimeout = 10 * time.Minute

// Regenerator is the scheduling operation the worker drives.
type Regenerator interface {
	RegenerateAll(ctx context.Context, horizonDays int) error
}

// Worker periodically regenerates instances for all active series.
type Worker struct {
	service     Regenerator
	cron        *cron.Cron
	schedule    string
	horizonDays int
	logger      logger.Logger
}

// New creates a regeneration worker. The schedule is a standard 5-field
// cron expression; it is validated at Start.
func New(service Regenerator, schedule string, horizonDays int, log logger.Logger) *Worker {
	return &Worker{
		service:     service,
		cron:        cron.New(),
		schedule:    schedule,
		horizonDays: horizonDays,
		logger:      log,
	}
}

// Start registers the sweep and starts the cron loop.
func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.sweep); err != nil {
		return fmt.Errorf("invalid worker schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	w.logger.Info("Regeneration worker started",
		logger.String("schedule", w.schedule),
		logger.Int("horizon_days", w.horizonDays),
	)
	return nil
}

// Stop stops the cron loop and waits for a running sweep to finish.
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("Regeneration worker stopped")
}

func (w *Worker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	start := time.Now()
	if err := w.service.RegenerateAll(ctx, w.horizonDays); err != nil {
		w.logger.Error("Regeneration sweep failed",
			logger.Error(err),
		)
		return
	}

	w.logger.Info("Regeneration sweep completed",
		logger.Duration("duration", time.Since(start)),
	)
}
