package commands

import (
	"context"
	"log/slog"
	"time"

	"roadside/internal/core/ports"
)

// RelayOutboxCommandHandler moves stored events to the event publisher.
//
// Messages are published oldest first. The first publish failure ends the run:
// messages already published in it are still marked processed, the rest are
// retried on the next run. Delivery is therefore at least once.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "outbox-relay"),
		now:        time.Now,
	}
}

// Handle returns the number of messages published.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	messages, err := outboxRepo.GetUnprocessedForUpdate(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	published := 0
	for _, msg := range messages {
		if err = h.publisher.Publish(ctx, msg); err != nil {
			h.logger.WarnContext(ctx, "publish failed, will retry",
				"message_id", msg.ID.String(),
				"name", msg.Name,
				"error", err)
			break
		}

		msg.MarkProcessed(h.now().UTC())
		if err = outboxRepo.MarkProcessed(ctx, msg); err != nil {
			return 0, err
		}
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, nil
}
