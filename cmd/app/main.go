package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadside/cmd"
	httpadapter "roadside/internal/adapters/in/http"
	postgres_adapter "roadside/internal/adapters/out/postgres"
	"roadside/internal/pkg/telemetry"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := telemetry.InitLogger(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupOTel(ctx, configs.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Error setting up tracing: %v", err)
	}

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres_adapter.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	publisher, closePublisher, err := cmd.ConnectEventPublisher(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Error connecting event brokers: %v", err)
	}
	idempotency, closeIdempotency, err := cmd.ConnectIdempotencyStore(ctx, configs)
	if err != nil {
		log.Fatalf("Error connecting idempotency store: %v", err)
	}

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	app := cmd.NewCompositionRoot(configs, gormDB, metrics, logger)

	jobManager, err := app.CreateJobManager(publisher)
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), httpadapter.RouterConfig{
		Metrics:        metrics,
		Gatherer:       prometheus.DefaultGatherer,
		Idempotency:    idempotency,
		IdempotencyTTL: configs.IdempotencyTTL,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("Error creating HTTP server: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})

	g.Go(func() error {
		if startErr := jobManager.StartAll(); startErr != nil {
			return startErr
		}
		<-gctx.Done()
		jobManager.StopAll()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()

	cleanupCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if closeErr := errors.Join(
		closePublisher(cleanupCtx),
		closeIdempotency(cleanupCtx),
		shutdownTracing(cleanupCtx),
	); closeErr != nil {
		logger.Error("Error releasing resources", "error", closeErr)
	}

	if runErr != nil {
		log.Fatalf("Server stopped with error: %v", runErr)
	}
	logger.Info("Server stopped")
}
