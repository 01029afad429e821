// Package events combines outbound event publishers.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"roadside/internal/core/domain/model/outbox"
	"roadside/internal/core/ports"
)

// Fanout delivers a message to every sink. All sinks are attempted; the
// message only counts as published when none failed, so a partial failure is
// retried everywhere on the next relay run. Sinks must tolerate duplicates.
type Fanout struct {
	sinks []namedSink
}

type namedSink struct {
	name      string
	publisher ports.EventPublisher
}

func NewFanout() *Fanout {
	return &Fanout{}
}

// With registers a sink under a name used in error messages.
func (f *Fanout) With(name string, publisher ports.EventPublisher) *Fanout {
	f.sinks = append(f.sinks, namedSink{name: name, publisher: publisher})
	return f
}

func (f *Fanout) Len() int {
	return len(f.sinks)
}

func (f *Fanout) Publish(ctx context.Context, message *outbox.Message) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.publisher.Publish(ctx, message); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.name, err))
		}
	}
	return errors.Join(errs...)
}

// LogPublisher writes messages to the log. It stands in when no broker is
// configured so the outbox still drains.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event-log")}
}

func (p *LogPublisher) Publish(ctx context.Context, message *outbox.Message) error {
	p.logger.InfoContext(ctx, "domain event",
		"id", message.ID.String(),
		"name", message.Name,
		"aggregate_id", message.AggregateID.String(),
		"payload", string(message.Payload),
	)
	return nil
}
