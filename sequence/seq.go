package sequence

import (
	"context"
	"iter"
)

// Seq adapts it for use with range. Failures are yielded with a zero value
// and end the iteration. The iterator is closed when the loop ends.
func Seq[T any](ctx context.Context, it Iterator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer it.Close()
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}
