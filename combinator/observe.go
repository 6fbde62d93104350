package combinator

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/observability"
	"github.com/kbukum/lazykit/resilience"
)

// WithCircuitBreaker runs calls through cb. While the circuit is open calls
// fail with CIRCUIT_OPEN without reaching the wrapped callable.
func WithCircuitBreaker[I, O any](cb *resilience.CircuitBreaker) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		return &breakerCallable[I, O]{inner: inner, cb: cb}
	}
}

type breakerCallable[I, O any] struct {
	inner Callable[I, O]
	cb    *resilience.CircuitBreaker
}

func (b *breakerCallable[I, O]) Name() string { return b.inner.Name() }

func (b *breakerCallable[I, O]) Call(ctx context.Context, in I) (out O, err error) {
	if err := b.cb.Allow(); err != nil {
		var zero O
		return zero, err
	}
	defer func() {
		if r := recover(); r != nil {
			b.cb.Record(fmt.Errorf("panic: %v", r))
			panic(r)
		}
		b.cb.Record(err)
	}()
	return b.inner.Call(ctx, in)
}

// WithTracing wraps each call in an OpenTelemetry span named
// "{serviceName}.{callableName}". Failures are recorded on the span.
func WithTracing[I, O any](serviceName string) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		return &tracingCallable[I, O]{inner: inner, serviceName: serviceName}
	}
}

type tracingCallable[I, O any] struct {
	inner       Callable[I, O]
	serviceName string
}

func (t *tracingCallable[I, O]) Name() string { return t.inner.Name() }

func (t *tracingCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	ctx, span := observability.StartSpan(ctx, t.serviceName+"."+t.inner.Name())
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrCallable, t.inner.Name())
	if args, ok := any(in).(Args); ok {
		observability.SetSpanAttribute(ctx, observability.AttrArgs, args.String())
	}

	out, err := t.inner.Call(ctx, in)
	if err != nil {
		observability.SetSpanError(ctx, err)
		if appErr, ok := apperrors.AsAppError(err); ok {
			observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(appErr.Code))
		}
	}
	return out, err
}

// WithMetrics records the count, duration and failures of each call.
func WithMetrics[I, O any](metrics *observability.Metrics) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		return &metricsCallable[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsCallable[I, O any] struct {
	inner   Callable[I, O]
	metrics *observability.Metrics
}

func (m *metricsCallable[I, O]) Name() string { return m.inner.Name() }

func (m *metricsCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	start := time.Now()
	out, err := m.inner.Call(ctx, in)
	duration := time.Since(start)

	if err != nil {
		code := string(apperrors.ErrCodeInternal)
		if appErr, ok := apperrors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		m.metrics.RecordError(ctx, code, m.inner.Name())
	}
	m.metrics.RecordOperation(ctx, m.inner.Name(), statusOf(err), duration)
	return out, err
}
