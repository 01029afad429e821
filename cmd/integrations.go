package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"roadside/internal/adapters/out/events"
	mongoadapter "roadside/internal/adapters/out/mongo"
	"roadside/internal/adapters/out/rabbit"
	redisadapter "roadside/internal/adapters/out/redis"
	"roadside/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Closer releases an integration. Closers are safe to call on every exit path.
type Closer func(ctx context.Context) error

func noopCloser(context.Context) error { return nil }

// ConnectEventPublisher builds the sink the outbox relay publishes to:
// RabbitMQ and the Mongo audit log when configured, the log otherwise.
func ConnectEventPublisher(ctx context.Context, cfg Config, logger *slog.Logger) (ports.EventPublisher, Closer, error) {
	fanout := events.NewFanout()
	var closers []Closer

	closeAll := func(ctx context.Context) error {
		var err error
		for i := len(closers) - 1; i >= 0; i-- {
			err = errors.Join(err, closers[i](ctx))
		}
		return err
	}

	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		publisher, err := rabbit.NewPublisher(conn)
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("declare exchange: %w", err)
		}
		closers = append(closers, func(context.Context) error {
			return errors.Join(publisher.Close(), conn.Close())
		})
		fanout.With("rabbitmq", publisher)
	}

	if cfg.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			_ = closeAll(ctx)
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err = client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			_ = closeAll(ctx)
			return nil, nil, fmt.Errorf("ping mongo: %w", err)
		}
		closers = append(closers, client.Disconnect)
		fanout.With("mongo-audit", mongoadapter.NewAuditSink(client.Database(cfg.MongoDB)))
	}

	if fanout.Len() == 0 {
		logger.Info("no event broker configured, relayed events are only logged")
		fanout.With("log", events.NewLogPublisher(logger))
	}

	return fanout, closeAll, nil
}

// ConnectIdempotencyStore returns nil without error when REDIS_ADDR is empty.
func ConnectIdempotencyStore(ctx context.Context, cfg Config) (ports.IdempotencyStore, Closer, error) {
	if cfg.RedisAddr == "" {
		return nil, noopCloser, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	return redisadapter.NewIdempotencyStore(client), func(context.Context) error { return client.Close() }, nil
}
