// Package usecase runs the transactional outbox worker that relays queued
// notification events to the mailer.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/schoolsite/internal/database"
	"github.com/allisson/schoolsite/internal/metrics"
	"github.com/allisson/schoolsite/internal/outbox/domain"
)

// Config holds outbox worker configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor defines the interface for processing different event types
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the interface for outbox use cases
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase polls the outbox table and relays each pending event through
// an EventProcessor. A failed event stays pending until MaxRetries is reached
// and is then marked failed.
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	metrics        metrics.BusinessMetrics
	logger         *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *OutboxUseCase {
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		metrics:        businessMetrics,
		logger:         logger,
	}
}

// Start processes a batch right away and then once per Interval until ctx is
// done. Batch errors are logged and do not stop the loop.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	uc.logger.Info("starting outbox worker",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
		slog.Int("max_retries", uc.config.MaxRetries),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		if err := uc.ProcessEvents(ctx); err != nil && ctx.Err() == nil {
			uc.logger.Error("failed to process outbox batch", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox worker")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ProcessEvents relays one batch of pending events inside a transaction.
// Rows are locked with SKIP LOCKED so concurrent workers never send twice.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		var sent, failed int
		for _, event := range events {
			start := time.Now()
			processErr := uc.eventProcessor.Process(ctx, event)
			metrics.Observe(ctx, uc.metrics, "outbox", event.EventType, start, processErr)

			if processErr != nil {
				failed++
				uc.markRetry(event, processErr)
			} else {
				sent++
				now := time.Now().UTC()
				event.Status = domain.OutboxEventStatusProcessed
				event.ProcessedAt = &now
				event.LastError = nil
			}
			event.UpdatedAt = time.Now().UTC()

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}

		uc.logger.Info("outbox batch processed",
			slog.Int("events", len(events)),
			slog.Int("sent", sent),
			slog.Int("failed", failed),
		)
		return nil
	})
}

// markRetry records a failed attempt and gives up once MaxRetries is reached.
func (uc *OutboxUseCase) markRetry(event *domain.OutboxEvent, cause error) {
	event.Retries++
	lastError := cause.Error()
	event.LastError = &lastError

	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.Int("retries", event.Retries),
		slog.Any("error", cause),
	}
	if event.Retries >= uc.config.MaxRetries {
		event.Status = domain.OutboxEventStatusFailed
		uc.logger.Error("outbox event failed permanently", attrs...)
		return
	}
	uc.logger.Warn("outbox event failed, will retry", attrs...)
}
