package jobs

import (
	"context"
	"log/slog"
	"time"

	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/pkg/telemetry"

	"github.com/robfig/cron/v3"
)

// DefaultPendingExpirySchedule runs the sweep at the start of every minute.
const DefaultPendingExpirySchedule = "0 * * * * *"

type OrderExpirer interface {
	Handle(ctx context.Context, command commands.ExpirePendingOrdersCommand) (int, error)
}

// PendingOrderExpiryJob cancels online orders whose payment never arrived and
// frees their agents.
type PendingOrderExpiryJob struct {
	handler  OrderExpirer
	command  commands.ExpirePendingOrdersCommand
	schedule string
	metrics  *telemetry.Metrics
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPendingOrderExpiryJob creates the sweep for orders pending longer than
// ttl. An empty schedule means DefaultPendingExpirySchedule.
func NewPendingOrderExpiryJob(
	handler OrderExpirer,
	schedule string,
	ttl time.Duration,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) (*PendingOrderExpiryJob, error) {
	cmd, err := commands.NewExpirePendingOrdersCommand(ttl, 0)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultPendingExpirySchedule
	}

	return &PendingOrderExpiryJob{
		handler:  handler,
		command:  cmd,
		schedule: schedule,
		metrics:  metrics,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "pending_order_expiry_job"),
	}, nil
}

// Run performs one sweep.
func (j *PendingOrderExpiryJob) Run(ctx context.Context) {
	expired, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order expiry job failed", "error", err)
		return
	}
	if expired > 0 {
		j.metrics.OrdersExpired.Add(float64(expired))
		j.logger.InfoContext(ctx, "Expired unpaid orders", "count", expired, "ttl", j.command.TTL().String())
	}
}

// Start schedules the job.
func (j *PendingOrderExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order expiry job started", "schedule", j.schedule)
	return nil
}

// Stop unschedules the job and waits for a running sweep to finish.
func (j *PendingOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending order expiry job stopped")
}
