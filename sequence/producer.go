package sequence

import (
	"context"
	"iter"
)

// Producer is a suspendable computation that yields values on demand.
// Nothing runs until the first Next; each further Next resumes the body
// exactly once. Abandoned producers must be closed to release the body.
type Producer[T any] struct {
	next    func() (T, bool)
	stop    func()
	bodyErr error
	done    bool
}

// Generate creates a producer from body. Returning from body exhausts it.
func Generate[T any](body func(yield func(T) bool)) *Producer[T] {
	return FromSeq(iter.Seq[T](body))
}

// GenerateErr is like Generate, but a non-nil error returned by body is
// reported once by Next before the producer reports exhaustion.
func GenerateErr[T any](body func(yield func(T) bool) error) *Producer[T] {
	p := &Producer[T]{}
	p.next, p.stop = iter.Pull(func(yield func(T) bool) {
		p.bodyErr = body(yield)
	})
	return p
}

// FromSeq adapts a range-over-func sequence.
func FromSeq[T any](seq iter.Seq[T]) *Producer[T] {
	p := &Producer[T]{}
	p.next, p.stop = iter.Pull(seq)
	return p
}

func (p *Producer[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if p.done {
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	v, ok := p.next()
	if ok {
		return v, true, nil
	}
	p.done = true
	p.stop()
	if err := p.bodyErr; err != nil {
		p.bodyErr = nil
		return zero, false, err
	}
	return zero, false, nil
}

// Close releases the suspended body, running its deferred calls. It is
// idempotent and leaves the producer exhausted.
func (p *Producer[T]) Close() error {
	p.done = true
	p.stop()
	return nil
}

// Count yields the half-open range [start, end).
func Count(start, end int) *Producer[int] {
	return Generate(func(yield func(int) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	})
}

// CountInclusive yields start..end with end included.
func CountInclusive(start, end int) *Producer[int] {
	return Count(start, end+1)
}

// Fibonacci yields the first n Fibonacci numbers.
func Fibonacci(n int) *Producer[int] {
	return Generate(func(yield func(int) bool) {
		a, b := 0, 1
		for range n {
			if !yield(a) {
				return
			}
			a, b = b, a+b
		}
	})
}

// Squares yields 1, 4, 9, ..., n*n.
func Squares(n int) *Producer[int] {
	return Generate(func(yield func(int) bool) {
		for i := 1; i <= n; i++ {
			if !yield(i * i) {
				return
			}
		}
	})
}

// Evens yields 2, 4, ... up to and including limit.
func Evens(limit int) *Producer[int] {
	return Generate(func(yield func(int) bool) {
		for i := 2; i <= limit; i += 2 {
			if !yield(i) {
				return
			}
		}
	})
}

// Naturals yields 1, 2, 3, ... without end.
func Naturals() *Producer[int] {
	return Generate(func(yield func(int) bool) {
		for i := 1; ; i++ {
			if !yield(i) {
				return
			}
		}
	})
}
