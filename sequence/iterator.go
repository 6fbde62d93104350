package sequence

import (
	"context"
	"errors"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// ErrExhausted is returned by Pull once an iterator has no more values.
// It is a condition, not a failure.
var ErrExhausted = errors.New("sequence: exhausted")

// Pull advances it once and reports exhaustion as ErrExhausted.
func Pull[T any](ctx context.Context, it Iterator[T]) (T, error) {
	v, ok, err := it.Next(ctx)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrExhausted
	}
	return v, nil
}

// IsExhausted reports whether err signals the end of a sequence.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}
