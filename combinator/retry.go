package combinator

import (
	"context"
	"time"

	"github.com/kbukum/lazykit/observability"
	"github.com/kbukum/lazykit/resilience"
)

// WithRetry re-invokes a failing callable up to cfg.MaxAttempts times in
// total. A success ends the loop; when every attempt fails the last failure
// is returned unchanged. Delays apply only before re-attempts and only when
// cfg.InitialBackoff is set.
func WithRetry[I, O any](cfg resilience.RetryConfig) Combinator[I, O] {
	return WithRetryMetrics[I, O](cfg, nil)
}

// WithRetryMetrics is WithRetry that also counts every re-attempt on metrics.
func WithRetryMetrics[I, O any](cfg resilience.RetryConfig, metrics *observability.Metrics) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		return &retryCallable[I, O]{inner: inner, cfg: cfg, metrics: metrics}
	}
}

type retryCallable[I, O any] struct {
	inner   Callable[I, O]
	cfg     resilience.RetryConfig
	metrics *observability.Metrics
}

func (r *retryCallable[I, O]) Name() string { return r.inner.Name() }

func (r *retryCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	cfg := r.cfg
	if r.metrics != nil {
		onRetry := cfg.OnRetry
		cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
			r.metrics.RecordRetry(ctx, r.inner.Name())
			if onRetry != nil {
				onRetry(attempt, err, delay)
			}
		}
	}
	return resilience.Retry(ctx, cfg, func() (O, error) {
		return r.inner.Call(ctx, in)
	})
}
