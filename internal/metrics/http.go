package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that hit no registered route, which keeps
// scanners probing random paths from creating new series.
const unmatchedRoute = "unknown"

var requestBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

type httpInstruments struct {
	requests  metric.Int64Counter
	durations metric.Float64Histogram
	inFlight  metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter, namespace string) (*httpInstruments, error) {
	var (
		in  httpInstruments
		err error
	)

	if in.requests, err = meter.Int64Counter(namespace+"_http_requests_total",
		metric.WithDescription("HTTP requests by method, route and status code"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	if in.durations, err = meter.Float64Histogram(namespace+"_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(requestBuckets...),
	); err != nil {
		return nil, err
	}

	if in.inFlight, err = meter.Int64UpDownCounter(namespace+"_http_requests_in_flight",
		metric.WithDescription("HTTP requests currently being served"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	return &in, nil
}

// HTTPMetricsMiddleware counts and times requests by gin route pattern, so
// /v1/admin/admins/:id stays a single series. If the instruments cannot be
// created the middleware passes requests through untouched.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	in, err := newHTTPInstruments(meterProvider.Meter(namespace), namespace)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		in.inFlight.Add(ctx, 1)
		defer in.inFlight.Add(ctx, -1)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		attrs := metric.WithAttributeSet(attribute.NewSet(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		))
		in.requests.Add(ctx, 1, attrs)
		in.durations.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}
