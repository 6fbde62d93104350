package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/kbukum/lazykit/bootstrap"
	"github.com/kbukum/lazykit/combinator"
	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/pipeline"
	"github.com/kbukum/lazykit/sequence"
)

type scenario struct {
	name string
	run  func(ctx context.Context) (string, error)
}

func scenarios(app *bootstrap.App) []scenario {
	return []scenario{
		{"counter", counterScenario},
		{"countdown", countdownScenario},
		{"fibonacci", fibonacciScenario},
		{"count", countScenario},
		{"naturals", naturalsScenario},
		{"doubler", doublerScenario},
		{"memo", memoScenario(app)},
		{"retry", retryScenario(app)},
		{"stack", stackScenario(app)},
		{"pipeline", pipelineScenario(app)},
		{"fold_empty", foldEmptyScenario},
		{"batch", batchScenario},
	}
}

// runScenarios runs every scenario, or only those named in only, and logs
// each result. It stops at the first failure.
func runScenarios(ctx context.Context, app *bootstrap.App, only []string) error {
	log := logger.Get("scenarios")
	for _, s := range scenarios(app) {
		if len(only) > 0 && !slices.Contains(only, s.name) {
			continue
		}
		result, err := s.run(ctx)
		if err != nil {
			log.Error("scenario failed", logger.ErrorFields(s.name, err))
			return fmt.Errorf("scenario %s: %w", s.name, err)
		}
		log.Info("scenario", logger.Fields("name", s.name, logger.FieldResult, result))
	}
	return nil
}

func collect(ctx context.Context, it sequence.Iterator[int]) (string, error) {
	values, err := pipeline.Collect(ctx, pipeline.From(it))
	if err != nil {
		return "", err
	}
	return fmt.Sprint(values), nil
}

func counterScenario(ctx context.Context) (string, error) {
	return collect(ctx, sequence.NewCounter(0, 5, sequence.BoundExclusive))
}

func countdownScenario(ctx context.Context) (string, error) {
	return collect(ctx, sequence.NewCountdown(3))
}

func fibonacciScenario(ctx context.Context) (string, error) {
	return collect(ctx, sequence.Fibonacci(10))
}

func countScenario(ctx context.Context) (string, error) {
	return collect(ctx, sequence.Count(3, 8))
}

func naturalsScenario(ctx context.Context) (string, error) {
	values, err := pipeline.Collect(ctx, pipeline.Take(pipeline.From[int](sequence.Naturals()), 5))
	if err != nil {
		return "", err
	}
	return fmt.Sprint(values), nil
}

func doublerScenario(ctx context.Context) (string, error) {
	d := sequence.Doubler()
	defer d.Close()

	first, _, err := d.Next(ctx)
	if err != nil {
		return "", err
	}
	out := []int{first}
	for _, v := range []int{5, 21} {
		doubled, _, err := d.Send(ctx, v)
		if err != nil {
			return "", err
		}
		out = append(out, doubled)
	}
	return fmt.Sprint(out), nil
}

func memoScenario(app *bootstrap.App) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		calls := 0
		var fib combinator.Callable[int, int]
		base := combinator.Func("fib", func(ctx context.Context, n int) (int, error) {
			calls++
			if n < 2 {
				return n, nil
			}
			a, err := fib.Call(ctx, n-1)
			if err != nil {
				return 0, err
			}
			b, err := fib.Call(ctx, n-2)
			if err != nil {
				return 0, err
			}
			return a + b, nil
		})

		fib = base
		if app.Cfg.Cache.Enabled {
			fib = combinator.NewMemoCache[int, int](nil).WithMetrics(app.Metrics).Wrap(base)
		}

		out, err := fib.Call(ctx, 25)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("fib(25)=%d calls=%d", out, calls), nil
	}
}

func retryScenario(app *bootstrap.App) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		calls := 0
		flaky := combinator.Func("flaky", func(context.Context, struct{}) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient failure")
			}
			return "ok", nil
		})

		wrapped := combinator.Wrap(flaky,
			combinator.WithLogging[struct{}, string](logger.Get("combinator")),
			combinator.WithRetryMetrics[struct{}, string](app.Cfg.Retry.ToRetryConfig(), app.Metrics),
		)
		out, err := wrapped.Call(ctx, struct{}{})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s after %d calls", out, calls), nil
	}
}

func stackScenario(app *bootstrap.App) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		sum := combinator.Func("sum", func(_ context.Context, args combinator.Args) (float64, error) {
			var total float64
			for _, v := range args.Positional {
				if n, ok := v.(int); ok {
					total += float64(n)
				}
			}
			return total, nil
		})

		stacked := combinator.Wrap(sum,
			combinator.WithTracing[combinator.Args, float64](app.Cfg.Telemetry.ServiceName),
			combinator.WithMetrics[combinator.Args, float64](app.Metrics),
			combinator.WithLogging[combinator.Args, float64](logger.Get("combinator")),
			combinator.LogTiming[combinator.Args, float64](logger.Get("combinator")),
			combinator.RequirePositive[float64](),
		)

		total, err := stacked.Call(ctx, combinator.NewArgs(1, 2, 3))
		if err != nil {
			return "", err
		}
		_, err = stacked.Call(ctx, combinator.NewArgs(-1))
		if !apperrors.HasCode(err, apperrors.ErrCodeInvalidArgument) {
			return "", fmt.Errorf("expected a rejected call, got %v", err)
		}
		return fmt.Sprintf("sum(1, 2, 3)=%g; sum(-1) rejected: %s", total, apperrors.ErrCodeInvalidArgument), nil
	}
}

func pipelineScenario(app *bootstrap.App) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		source := pipeline.FromFunc(func(context.Context) pipeline.Iterator[int] {
			return sequence.CountInclusive(1, 10)
		})
		evens := pipeline.Filter(source, func(n int) bool { return n%2 == 0 })
		squares := pipeline.Map(evens, func(_ context.Context, n int) (int, error) { return n * n, nil })
		timed := pipeline.Timed(squares, func(d time.Duration) {
			logger.Get("pipeline").Debug("pipeline drained", logger.DurationFields("even_squares", d))
		})

		folded, err := pipeline.First(ctx, pipeline.Fold(timed, func(a, b int) int { return a + b }))
		if err != nil {
			return "", err
		}

		inline := 0
		for n := 1; n <= 10; n++ {
			if n%2 == 0 {
				inline += n * n
			}
		}
		if folded != inline {
			return "", fmt.Errorf("fold gave %d, inline loop %d", folded, inline)
		}
		return fmt.Sprintf("%d == %d", folded, inline), nil
	}
}

func foldEmptyScenario(ctx context.Context) (string, error) {
	_, err := pipeline.First(ctx, pipeline.Fold(pipeline.FromSlice([]int{}), func(a, b int) int { return a + b }))
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return "", fmt.Errorf("expected an error folding an empty sequence, got %v", err)
	}
	return string(appErr.Code), nil
}

func batchScenario(ctx context.Context) (string, error) {
	batches, err := pipeline.Collect(ctx, pipeline.Batch(pipeline.FromSlice([]int{1, 2, 3, 4, 5, 6, 7}), 3))
	if err != nil {
		return "", err
	}
	return fmt.Sprint(batches), nil
}
