// Package bootstrap runs a lazykit task with its ambient stack in place.
//
// NewApp validates a config.RuntimeConfig, builds the logger and, when
// telemetry is enabled, installs OpenTelemetry meter and tracer providers.
// RunTask wraps the task with start and stop hooks, signal cancellation and
// a closing summary that includes the collected metric totals.
package bootstrap
