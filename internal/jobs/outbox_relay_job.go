package jobs

import (
	"context"
	"log/slog"

	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/pkg/telemetry"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

type OutboxRelayer interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes stored domain events on a schedule.
// A run that is still publishing when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler  OutboxRelayer
	schedule string
	metrics  *telemetry.Metrics
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the relay job. An empty schedule means
// DefaultOutboxRelaySchedule.
func NewOutboxRelayJob(
	handler OutboxRelayer,
	schedule string,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:  handler,
		schedule: schedule,
		metrics:  metrics,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

// Run performs one relay pass.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(0)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay command is invalid", "error", err)
		return
	}

	published, err := j.handler.Handle(ctx, cmd)
	if published > 0 {
		j.metrics.OutboxRelayed.Add(float64(published))
		j.logger.DebugContext(ctx, "Outbox messages published", "count", published)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
	}
}

// Start schedules the job.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop unschedules the job and waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
