package combinator

import (
	"context"
	"sync/atomic"
)

// WithRepeat calls the wrapped callable n times per call and returns the
// last result. The first failure stops the repetition and is returned.
// Values of n below 1 are treated as 1.
func WithRepeat[I, O any](n int) Combinator[I, O] {
	if n < 1 {
		n = 1
	}
	return func(inner Callable[I, O]) Callable[I, O] {
		return &repeatCallable[I, O]{inner: inner, times: n}
	}
}

type repeatCallable[I, O any] struct {
	inner Callable[I, O]
	times int
}

func (r *repeatCallable[I, O]) Name() string { return r.inner.Name() }

func (r *repeatCallable[I, O]) Call(ctx context.Context, in I) (out O, err error) {
	for range r.times {
		out, err = r.inner.Call(ctx, in)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// CallCounter counts the calls made through the callables it wraps.
type CallCounter[I, O any] struct {
	count atomic.Int64
}

// NewCallCounter creates a counter starting at zero.
func NewCallCounter[I, O any]() *CallCounter[I, O] {
	return &CallCounter[I, O]{}
}

// Wrap returns inner counted by c.
func (c *CallCounter[I, O]) Wrap(inner Callable[I, O]) Callable[I, O] {
	return &countingCallable[I, O]{inner: inner, counter: c}
}

// Combinator returns Wrap as a Combinator for use in Chain.
func (c *CallCounter[I, O]) Combinator() Combinator[I, O] {
	return c.Wrap
}

// Count returns the number of calls so far, failed ones included.
func (c *CallCounter[I, O]) Count() int {
	return int(c.count.Load())
}

type countingCallable[I, O any] struct {
	inner   Callable[I, O]
	counter *CallCounter[I, O]
}

func (c *countingCallable[I, O]) Name() string { return c.inner.Name() }

func (c *countingCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	c.counter.count.Add(1)
	return c.inner.Call(ctx, in)
}

// MapResult transforms each successful result with fn. Failures pass
// through untouched.
func MapResult[I, O any](fn func(O) O) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		return &mapResultCallable[I, O]{inner: inner, fn: fn}
	}
}

type mapResultCallable[I, O any] struct {
	inner Callable[I, O]
	fn    func(O) O
}

func (m *mapResultCallable[I, O]) Name() string { return m.inner.Name() }

func (m *mapResultCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	out, err := m.inner.Call(ctx, in)
	if err != nil {
		return out, err
	}
	return m.fn(out), nil
}
