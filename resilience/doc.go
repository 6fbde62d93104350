// Package resilience provides the failure-handling policies behind the
// retry and circuit-breaker combinators.
//
//   - Retry: re-runs a failing call up to a fixed number of attempts, with
//     an optional exponential backoff schedule (cenkalti/backoff)
//
//   - CircuitBreaker: fails fast after repeated consecutive failures and
//     probes for recovery after a cool-down
//
//     cfg := resilience.RetryConfig{MaxAttempts: 3}
//     v, err := resilience.Retry(ctx, cfg, func() (int, error) {
//     return flaky(ctx)
//     })
package resilience
