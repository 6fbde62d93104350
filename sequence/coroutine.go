package sequence

import (
	"context"
	"iter"

	apperrors "github.com/kbukum/lazykit/errors"
)

// Resume is what a suspended coroutine body receives when it is resumed.
// Sent is false when the coroutine was advanced with Next.
type Resume[S any] struct {
	Value S
	Sent  bool
}

// Coroutine is a producer that can also receive values at its suspension
// points. S is the type sent in, T the type yielded out.
type Coroutine[S, T any] struct {
	next    func() (T, bool)
	stop    func()
	pending Resume[S]
	started bool
	done    bool
}

// NewCoroutine creates a coroutine. The body's yield suspends with a value
// and, once resumed, returns what the caller supplied. A false second result
// means the coroutine was closed and the body should return.
func NewCoroutine[S, T any](body func(yield func(T) (Resume[S], bool))) *Coroutine[S, T] {
	c := &Coroutine[S, T]{}
	c.next, c.stop = iter.Pull(func(yield func(T) bool) {
		body(func(v T) (Resume[S], bool) {
			if !yield(v) {
				return Resume[S]{}, false
			}
			r := c.pending
			c.pending = Resume[S]{}
			return r, true
		})
	})
	return c
}

// Next resumes the body without a value.
func (c *Coroutine[S, T]) Next(ctx context.Context) (T, bool, error) {
	return c.resume(ctx, Resume[S]{})
}

// Send resumes the body with s. The coroutine must have been started with
// Next first.
func (c *Coroutine[S, T]) Send(ctx context.Context, s S) (T, bool, error) {
	if !c.started && !c.done {
		var zero T
		return zero, false, apperrors.ResumeMisuse("send")
	}
	return c.resume(ctx, Resume[S]{Value: s, Sent: true})
}

func (c *Coroutine[S, T]) resume(ctx context.Context, r Resume[S]) (T, bool, error) {
	var zero T
	if c.done {
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	c.started = true
	c.pending = r
	v, ok := c.next()
	if !ok {
		c.done = true
		c.stop()
		return zero, false, nil
	}
	return v, true, nil
}

// Close releases the suspended body.
func (c *Coroutine[S, T]) Close() error {
	c.done = true
	c.stop()
	return nil
}

// Doubler yields the double of every value sent to it. It must be primed
// with Next, which yields 0.
func Doubler() *Coroutine[int, int] {
	return NewCoroutine(func(yield func(int) (Resume[int], bool)) {
		out := 0
		for {
			r, ok := yield(out)
			if !ok {
				return
			}
			out = 0
			if r.Sent {
				out = r.Value * 2
			}
		}
	})
}
