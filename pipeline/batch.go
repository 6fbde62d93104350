package pipeline

import (
	"context"
)

// Batch groups consecutive values into slices of size values. The last
// batch holds whatever remains and may be shorter. A size below 1 is
// treated as 1.
func Batch[T any](p *Pipeline[T], size int) *Pipeline[[]T] {
	if size <= 0 {
		size = 1
	}
	return &Pipeline[[]T]{
		create: func(ctx context.Context) Iterator[[]T] {
			return &batchIter[T]{
				source: p.create(ctx),
				size:   size,
			}
		},
	}
}

type batchIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
	err    error
}

func (it *batchIter[T]) Next(ctx context.Context) (result []T, ok bool, err error) {
	if it.err != nil {
		err, it.err = it.err, nil
		it.done = true
		return nil, false, err
	}
	if it.done {
		return nil, false, nil
	}

	batch := make([]T, 0, it.size)
	for len(batch) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			if len(batch) > 0 {
				// Surface the partial batch; the error follows on the next call.
				it.err = err
				return batch, true, nil
			}
			return nil, false, err
		}
		if !ok {
			it.done = true
			if len(batch) > 0 {
				return batch, true, nil
			}
			return nil, false, nil
		}
		batch = append(batch, val)
	}
	return batch, true, nil
}

func (it *batchIter[T]) Close() error { return it.source.Close() }
