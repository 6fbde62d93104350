package sequence

import (
	"context"

	apperrors "github.com/kbukum/lazykit/errors"
)

// Bound selects whether a Counter includes its end value.
type Bound int

const (
	BoundExclusive Bound = iota
	BoundInclusive
)

func (b Bound) String() string {
	if b == BoundInclusive {
		return "inclusive"
	}
	return "exclusive"
}

// Counter yields start, start+1, ... up to end.
type Counter struct {
	current int
	end     int
	bound   Bound
	done    bool
}

// NewCounter creates a counting cursor. With BoundExclusive the end value is
// never produced; with BoundInclusive it is the last value.
func NewCounter(start, end int, bound Bound) *Counter {
	return &Counter{current: start, end: end, bound: bound}
}

func (c *Counter) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if c.done || c.current > c.end || (c.bound == BoundExclusive && c.current == c.end) {
		return 0, false, nil
	}
	v := c.current
	if v == c.end {
		// end may be math.MaxInt; never step past it.
		c.done = true
	} else {
		c.current++
	}
	return v, true, nil
}

func (c *Counter) Close() error { return nil }

// Unbounded yields start, start+1, ... forever.
type Unbounded struct {
	current int
}

func NewUnbounded(start int) *Unbounded {
	return &Unbounded{current: start}
}

func (u *Unbounded) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	v := u.current
	u.current++
	return v, true, nil
}

func (u *Unbounded) Close() error { return nil }

// Range steps from start towards end (exclusive). A negative step counts down.
type Range struct {
	current int
	end     int
	step    int
	done    bool
}

// NewRange creates a stepping cursor. A zero step is rejected.
func NewRange(start, end, step int) (*Range, error) {
	if step == 0 {
		return nil, apperrors.InvalidArgument("range", "step must not be zero")
	}
	return &Range{current: start, end: end, step: step}, nil
}

func (r *Range) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if r.done || (r.step > 0 && r.current >= r.end) || (r.step < 0 && r.current <= r.end) {
		return 0, false, nil
	}
	v := r.current
	if r.remaining() <= r.stride() {
		r.done = true
	} else {
		r.current += r.step
	}
	return v, true, nil
}

func (r *Range) Close() error { return nil }

// remaining and stride are computed unsigned so that neither the distance
// to end nor the step magnitude can overflow.
func (r *Range) remaining() uint {
	if r.step > 0 {
		return uint(r.end) - uint(r.current)
	}
	return uint(r.current) - uint(r.end)
}

func (r *Range) stride() uint {
	if r.step > 0 {
		return uint(r.step)
	}
	return uint(-r.step)
}

// Countdown yields n, n-1, ..., 1.
type Countdown struct {
	current int
}

func NewCountdown(n int) *Countdown {
	return &Countdown{current: n}
}

func (c *Countdown) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if c.current <= 0 {
		return 0, false, nil
	}
	v := c.current
	c.current--
	return v, true, nil
}

func (c *Countdown) Close() error { return nil }

// FibonacciCursor yields the Fibonacci numbers 0, 1, 1, 2, 3, ...
type FibonacciCursor struct {
	a, b      int
	remaining int
	unbounded bool
}

// NewFibonacci yields exactly limit terms. A negative limit never exhausts.
func NewFibonacci(limit int) *FibonacciCursor {
	return &FibonacciCursor{a: 0, b: 1, remaining: limit, unbounded: limit < 0}
}

func (f *FibonacciCursor) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if !f.unbounded {
		if f.remaining <= 0 {
			return 0, false, nil
		}
		f.remaining--
	}
	v := f.a
	f.a, f.b = f.b, f.a+f.b
	return v, true, nil
}

func (f *FibonacciCursor) Close() error { return nil }

// SliceCursor yields the elements of a slice in order.
type SliceCursor[T any] struct {
	items []T
	index int
}

func FromSlice[T any](items []T) *SliceCursor[T] {
	return &SliceCursor[T]{items: items}
}

func (s *SliceCursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.index >= len(s.items) {
		return zero, false, nil
	}
	v := s.items[s.index]
	s.index++
	return v, true, nil
}

func (s *SliceCursor[T]) Close() error { return nil }
