package combinator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazykit/combinator"
	"github.com/kbukum/lazykit/observability"
	"github.com/kbukum/lazykit/resilience"
)

func TestWithRetry(t *testing.T) {
	errTransient := errors.New("transient")

	tests := []struct {
		name        string
		maxAttempts int
		okAfter     int
		wantErr     bool
		wantCalls   int
	}{
		{"succeeds on third attempt", 3, 3, false, 3},
		{"gives up after two attempts", 2, 3, true, 2},
		{"first attempt succeeds", 3, 1, false, 1},
		{"zero attempts means one", 0, 2, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, calls := flaky(tt.okAfter, errTransient)
			wrapped := combinator.Wrap(f, combinator.WithRetry[string, string](resilience.RetryConfig{
				MaxAttempts: tt.maxAttempts,
			}))

			out, err := wrapped.Call(context.Background(), "x")
			if tt.wantErr {
				if err != errTransient {
					t.Fatalf("expected the last failure unchanged, got %v", err)
				}
			} else if err != nil || out != "ok:x" {
				t.Fatalf("expected ok:x, got %q, err %v", out, err)
			}
			if *calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", *calls, tt.wantCalls)
			}
		})
	}
}

func TestWithRetry_DelaysOnlyBetweenAttempts(t *testing.T) {
	var delays []time.Duration
	f, _ := flaky(10, errors.New("down"))
	wrapped := combinator.Wrap(f, combinator.WithRetry[string, string](resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2,
		OnRetry: func(_ int, _ error, delay time.Duration) {
			delays = append(delays, delay)
		},
	}))

	start := time.Now()
	_, _ = wrapped.Call(context.Background(), "x")
	elapsed := time.Since(start)

	if len(delays) != 2 {
		t.Fatalf("expected 2 delays, got %v", delays)
	}
	if delays[0] != time.Millisecond || delays[1] != 2*time.Millisecond {
		t.Errorf("delays = %v, want [1ms 2ms]", delays)
	}
	if elapsed < 3*time.Millisecond {
		t.Errorf("elapsed %v shorter than the scheduled delays", elapsed)
	}
}

func TestWithRetryMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	f, _ := flaky(3, errors.New("transient"))
	wrapped := combinator.Wrap(f, combinator.WithRetryMetrics[string, string](
		resilience.RetryConfig{MaxAttempts: 5}, metrics,
	))
	if _, err := wrapped.Call(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	retries, err := observability.CountWhere(context.Background(), reader, observability.MetricRetryTotal, "callable", "flaky")
	if err != nil {
		t.Fatal(err)
	}
	if retries != 2 {
		t.Errorf("retries = %d, want 2", retries)
	}
}

func TestWithRetry_InsideMemo(t *testing.T) {
	cache := combinator.NewMemoCache[string, string](nil)
	f, calls := flaky(2, errors.New("transient"))
	wrapped := combinator.Wrap(f,
		cache.Combinator(),
		combinator.WithRetry[string, string](resilience.RetryConfig{MaxAttempts: 2}),
	)

	for range 3 {
		if _, err := wrapped.Call(context.Background(), "k"); err != nil {
			t.Fatal(err)
		}
	}
	if *calls != 2 {
		t.Errorf("calls = %d, want 2", *calls)
	}
}
