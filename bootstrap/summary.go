package bootstrap

import (
	"context"
	"maps"
	"slices"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/observability"
)

// Summary records how a run went.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	taskDuration    time.Duration
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the time spent before the task started.
func (s *Summary) SetStartupDuration(d time.Duration) { s.startupDuration = d }

// SetTaskDuration records the time the task took.
func (s *Summary) SetTaskDuration(d time.Duration) { s.taskDuration = d }

// Fields returns the summary as log fields, including the metric totals
// collected from reader when it is not nil.
func (s *Summary) Fields(ctx context.Context, reader sdkmetric.Reader) map[string]interface{} {
	fields := logger.Fields(
		"name", s.serviceName,
		"version", s.version,
		"startup", s.startupDuration.String(),
		"task", s.taskDuration.String(),
	)
	if reader == nil {
		return fields
	}

	totals, err := observability.Snapshot(ctx, reader)
	if err != nil {
		return logger.MergeWithError(fields, err)
	}
	for _, name := range slices.Sorted(maps.Keys(totals)) {
		fields[name] = totals[name]
	}
	return fields
}

// Display logs the summary.
func (s *Summary) Display(ctx context.Context, reader sdkmetric.Reader, log *logger.Logger) {
	log.Info("run summary", s.Fields(ctx, reader))
}
