package jobs

import (
	"context"
	"errors"
	"log/slog"

	"willowcommerce/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveredSyncJob runs the scheduled delivery sweep. Every minute it promotes
// shipped orders whose transit time has elapsed to DELIVERED, stamping the
// delivery date the refund window is measured against.
type DeliveredSyncJob struct {
	handler commands.SyncDeliveredOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveredSyncJob creates a new job for the delivery sweep.
// Uses SyncDeliveredOrdersCommandHandler to process due orders every minute.
func NewDeliveredSyncJob(handler commands.SyncDeliveredOrdersCommandHandler, logger *slog.Logger) *DeliveredSyncJob {
	return &DeliveredSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivered_sync_job"),
	}
}

// Start begins the delivery sweep job to run every minute.
func (j *DeliveredSyncJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncDeliveredOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoOrdersDue) {
				j.logger.ErrorContext(ctx, "Delivered sync job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivered sync job started (running every minute)")
	return nil
}

// Stop stops the delivery sweep job.
func (j *DeliveredSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivered sync job stopped")
}
