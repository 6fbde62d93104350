package combinator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/lazykit/logger"
)

// WithLogging logs each call before it runs and its result or failure
// afterwards. Every call gets a fresh call id, which is stored in the
// context handed to the wrapped callable so inner log entries can be
// correlated. The outcome is returned unchanged.
func WithLogging[I, O any](log *logger.Logger) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		return &loggingCallable[I, O]{inner: inner, log: log}
	}
}

type loggingCallable[I, O any] struct {
	inner Callable[I, O]
	log   *logger.Logger
}

func (l *loggingCallable[I, O]) Name() string { return l.inner.Name() }

func (l *loggingCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	ctx = logger.ContextWithCallID(ctx, uuid.NewString())
	log := l.log.WithContext(ctx)
	name := l.inner.Name()

	log.Debug("call", logger.Fields(
		logger.FieldCallable, name,
		logger.FieldArgs, fmt.Sprint(in),
	))

	out, err := l.inner.Call(ctx, in)
	if err != nil {
		log.Error("call failed", logger.Fields(
			logger.FieldCallable, name,
			logger.FieldError, err.Error(),
		))
		return out, err
	}

	log.Debug("return", logger.Fields(
		logger.FieldCallable, name,
		logger.FieldResult, fmt.Sprint(out),
	))
	return out, nil
}
