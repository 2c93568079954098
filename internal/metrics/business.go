package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records counts and durations of use case operations.
// Domains are "auth", "setting", "contact" and "outbox"; operations are names
// such as "login", "admin_create" or an outbox event type.
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

// Observe records both the counter and the histogram for an operation that
// started at start and finished with err.
func Observe(ctx context.Context, m BusinessMetrics, domain, operation string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

// operationBuckets cover bcrypt verification, which dominates login latency.
var operationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

type otelBusinessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
}

// NewBusinessMetrics registers <namespace>_operations_total and
// <namespace>_operation_duration_seconds on meterProvider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)
	m := &otelBusinessMetrics{}

	var err error
	m.operations, err = meter.Int64Counter(namespace+"_operations_total",
		metric.WithDescription("Use case operations by domain, operation and status"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	m.durations, err = meter.Float64Histogram(namespace+"_operation_duration_seconds",
		metric.WithDescription("Use case operation latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(operationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return m, nil
}

func (m *otelBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.operations.Add(ctx, 1, operationAttrs(domain, operation, status))
}

func (m *otelBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.durations.Record(ctx, duration.Seconds(), operationAttrs(domain, operation, status))
}

func operationAttrs(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributeSet(attribute.NewSet(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}

// NoOpBusinessMetrics discards everything; used when METRICS_ENABLED=false.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing.
func (*NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

// RecordDuration does nothing.
func (*NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}
