package bootstrap

import (
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/lazykit/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	reader          sdkmetric.Reader
	exporter        sdktrace.SpanExporter
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the application logger instead of building one from the
// config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithMetricReader sets the reader metrics are collected through. Defaults
// to a manual reader.
func WithMetricReader(r sdkmetric.Reader) Option {
	return func(o *appOptions) {
		o.reader = r
	}
}

// WithSpanExporter sets where finished spans go. Defaults to the logger.
func WithSpanExporter(e sdktrace.SpanExporter) Option {
	return func(o *appOptions) {
		o.exporter = e
	}
}

// WithGracefulTimeout bounds the time spent in shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}
