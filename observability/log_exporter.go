package observability

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/lazykit/logger"
)

// LogExporter writes finished spans to a logger. It lets the demo runner
// show traces without a collector.
type LogExporter struct {
	log *logger.Logger
}

// NewLogExporter creates a span exporter that logs at debug level.
func NewLogExporter(log *logger.Logger) *LogExporter {
	return &LogExporter{log: log.WithComponent("trace")}
}

// ExportSpans logs each span with its ids, duration and status.
func (e *LogExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		fields := logger.DurationFields(s.Name(), s.EndTime().Sub(s.StartTime()))
		fields[logger.FieldTraceID] = s.SpanContext().TraceID().String()
		fields[logger.FieldSpanID] = s.SpanContext().SpanID().String()
		fields[logger.FieldStatus] = s.Status().Code.String()
		for _, kv := range s.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}
		e.log.Debug("span", fields)
	}
	return nil
}

// Shutdown is a no-op; the logger owns no resources.
func (e *LogExporter) Shutdown(context.Context) error { return nil }
