// Package combinator provides decorator-style wrappers for named callables
// and the means to stack them.
//
// A Combinator takes a Callable and returns a Callable with the same name
// and the same input, adding behavior around the call: timing, memoization,
// retries, argument validation, logging, tracing and metrics. Combinators
// are transparent to failures unless handling them is their purpose.
//
// Stacks nest strictly. For Wrap(f, a, b, c) the pre-call logic runs
// a, b, c, then f, then the post-call logic runs c, b, a:
//
//	fib := combinator.Wrap(
//	    combinator.Func("fib", fibonacci),
//	    combinator.WithLogging[int, int](log),
//	    combinator.LogTiming[int, int](log),
//	    combinator.WithRetry[int, int](resilience.RetryConfig{MaxAttempts: 3}),
//	)
//
// Calls with many or named arguments take an Args value.
package combinator
