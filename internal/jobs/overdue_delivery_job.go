package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// OverdueDeliveryJob runs the hourly sweep over in-progress orders whose
// delivery date has passed, publishing an overdue event for each.
type OverdueDeliveryJob struct {
	handler commands.NotifyOverdueOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueDeliveryJob creates the overdue-delivery sweep job.
func NewOverdueDeliveryJob(handler commands.NotifyOverdueOrdersCommandHandler, logger *slog.Logger) *OverdueDeliveryJob {
	return &OverdueDeliveryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "overdue_delivery_job"),
	}
}

// Start begins the sweep, running at the top of every hour.
func (j *OverdueDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewNotifyOverdueOrdersCommand()

		reported, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue delivery sweep failed", "error", err)
			return
		}

		metrics.OverdueOrdersDetected.Add(float64(reported))
		if reported > 0 {
			j.logger.InfoContext(ctx, "Overdue delivery sweep reported orders", "count", reported)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue delivery job started (running hourly)")
	return nil
}

// Stop stops the sweep job.
func (j *OverdueDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue delivery job stopped")
}
