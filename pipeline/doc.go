// Package pipeline provides composable, pull-based map/filter/reduce stages
// over lazy sequences.
//
// Pipelines are lazy. No work happens until values are pulled via Collect,
// Drain, ForEach, First or Sum. Each stage pulls from the previous stage on
// demand and never pulls more than it needs, so pipelines over unbounded
// producers terminate as long as a Take or a short-circuiting terminal is
// present.
//
// Iterator is an alias of sequence.Iterator, so cursors and producers plug
// directly into pipelines via From.
//
// # Operators
//
//   - Map: transform each value
//   - FlatMap: transform each value into multiple values
//   - Filter: keep values matching a predicate
//   - Tap: side-effect without altering the value
//   - Take: stop after n values
//   - Zip: combine two pipelines pairwise
//   - Batch: group values into fixed-size slices
//   - Concat: join pipelines sequentially
//   - Timed: report the elapsed time of a traversal
//   - Reduce, Fold: accumulate all values into one result
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5, 6})
//	evens := pipeline.Filter(src, func(n int) bool { return n%2 == 0 })
//	squares := pipeline.Map(evens, func(_ context.Context, n int) (int, error) {
//	    return n * n, nil
//	})
//	total, err := pipeline.First(ctx, pipeline.Fold(squares, func(a, b int) int { return a + b }))
package pipeline
