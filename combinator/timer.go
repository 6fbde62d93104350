package combinator

import (
	"context"
	"time"

	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/observability"
)

// TimerConfig configures WithTimer.
type TimerConfig struct {
	// OnStart is called right before the wrapped callable runs.
	OnStart func(ctx context.Context, name string)
	// Report receives the elapsed time of every call, failed or not.
	Report func(ctx context.Context, name string, elapsed time.Duration, err error)
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// WithTimer measures each call and reports the elapsed time. The outcome of
// the call is returned unchanged.
func WithTimer[I, O any](cfg TimerConfig) Combinator[I, O] {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return func(inner Callable[I, O]) Callable[I, O] {
		return &timerCallable[I, O]{inner: inner, cfg: cfg}
	}
}

type timerCallable[I, O any] struct {
	inner Callable[I, O]
	cfg   TimerConfig
}

func (t *timerCallable[I, O]) Name() string { return t.inner.Name() }

func (t *timerCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	if t.cfg.OnStart != nil {
		t.cfg.OnStart(ctx, t.inner.Name())
	}
	start := t.cfg.Now()
	out, err := t.inner.Call(ctx, in)
	if t.cfg.Report != nil {
		t.cfg.Report(ctx, t.inner.Name(), t.cfg.Now().Sub(start), err)
	}
	return out, err
}

// LogTiming returns a timer that logs the start and the duration of each call.
func LogTiming[I, O any](log *logger.Logger) Combinator[I, O] {
	return WithTimer[I, O](TimerConfig{
		OnStart: func(ctx context.Context, name string) {
			log.WithContext(ctx).Debug("timer started", logger.Fields(logger.FieldCallable, name))
		},
		Report: func(ctx context.Context, name string, elapsed time.Duration, err error) {
			fields := logger.DurationFields(name, elapsed)
			if err != nil {
				fields = logger.MergeWithError(fields, err)
			}
			log.WithContext(ctx).Info("timer finished", fields)
		},
	})
}

// RecordTiming returns a timer that records each call on metrics.
func RecordTiming[I, O any](metrics *observability.Metrics) Combinator[I, O] {
	return WithTimer[I, O](TimerConfig{
		Report: func(ctx context.Context, name string, elapsed time.Duration, err error) {
			metrics.RecordOperation(ctx, name, statusOf(err), elapsed)
		},
	})
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
