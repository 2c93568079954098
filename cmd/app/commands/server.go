package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/schoolsite/internal/app"
	"github.com/allisson/schoolsite/internal/config"
	outboxUseCase "github.com/allisson/schoolsite/internal/outbox/usecase"
)

const shutdownTimeout = 15 * time.Second

// RunServer starts the API server, the metrics server when enabled and the
// outbox worker when enabled. Blocks until SIGINT/SIGTERM or until one of them
// fails, then shuts the others down within shutdownTimeout.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	// Building the API server initializes every dependency it needs.
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	var outbox outboxUseCase.UseCase
	if cfg.OutboxEnabled {
		outbox, err = container.OutboxUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize outbox worker: %w", err)
		}
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(gctx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			if err := metricsServer.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	if outbox != nil {
		g.Go(func() error {
			if err := outbox.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("outbox worker error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown initiated")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// RunWorker runs only the outbox worker that relays queued emails. Use it
// when the API runs with OUTBOX_ENABLED=false.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting outbox worker", slog.String("version", version))

	defer closeContainer(container, logger)

	outbox, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runWorkerLoop(ctx, outbox, logger)
}

// runWorkerLoop runs worker until ctx is cancelled. Cancellation is a clean stop.
func runWorkerLoop(ctx context.Context, worker outboxUseCase.UseCase, logger *slog.Logger) error {
	if err := worker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker error: %w", err)
	}
	logger.Info("outbox worker stopped")
	return nil
}
