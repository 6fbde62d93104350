package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazykit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
	}
}

// NewMeterProvider builds a meter provider that feeds reader and installs it
// as the global provider. Pass sdkmetric.NewManualReader() to collect
// in-process. The provider should be shut down on exit.
func NewMeterProvider(config MeterConfig, reader sdkmetric.Reader) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields("service", config.ServiceName))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricCallTotal    = "lazykit.call.total"
	MetricCallDuration = "lazykit.call.duration"
	MetricErrorTotal   = "lazykit.error.total"
	MetricCacheLookups = "lazykit.cache.lookups"
	MetricRetryTotal   = "lazykit.retry.total"
)

// Metrics holds the instruments recorded by the metrics, memo and retry
// combinators.
type Metrics struct {
	callTotal    metric.Int64Counter
	callDuration metric.Float64Histogram
	errorTotal   metric.Int64Counter
	cacheLookups metric.Int64Counter
	retryTotal   metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	callTotal, err := meter.Int64Counter(MetricCallTotal,
		metric.WithDescription("Total number of wrapped calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCallTotal, err)
	}

	callDuration, err := meter.Float64Histogram(MetricCallDuration,
		metric.WithDescription("Duration of wrapped calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricCallDuration, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Total failed calls by error code and callable"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	cacheLookups, err := meter.Int64Counter(MetricCacheLookups,
		metric.WithDescription("Memo cache lookups by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCacheLookups, err)
	}

	retryTotal, err := meter.Int64Counter(MetricRetryTotal,
		metric.WithDescription("Re-attempts made by the retry combinator"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRetryTotal, err)
	}

	return &Metrics{
		callTotal:    callTotal,
		callDuration: callDuration,
		errorTotal:   errorTotal,
		cacheLookups: cacheLookups,
		retryTotal:   retryTotal,
	}, nil
}

// RecordOperation records one completed call.
func (m *Metrics) RecordOperation(ctx context.Context, callable, status string, duration time.Duration) {
	m.callTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("callable", callable),
		attribute.String("status", status),
	))
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("callable", callable),
	))
}

// RecordError records a failure by error code and callable.
func (m *Metrics) RecordError(ctx context.Context, code, callable string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("callable", callable),
	))
}

// RecordCacheLookup records a memo cache hit or miss.
func (m *Metrics) RecordCacheLookup(ctx context.Context, callable string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("callable", callable),
		attribute.String("result", result),
	))
}

// RecordRetry records one re-attempt.
func (m *Metrics) RecordRetry(ctx context.Context, callable string) {
	m.retryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("callable", callable),
	))
}
