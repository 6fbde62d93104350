// Package observability provides OpenTelemetry tracing and metrics for
// lazykit's combinators.
//
// Providers are built around an in-process reader or exporter; nothing is
// sent over the network.
//
// Tracing:
//
//	tp, err := observability.NewTracerProvider(observability.DefaultTracerConfig("lazykit"),
//	    observability.NewLogExporter(log))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	reader := sdkmetric.NewManualReader()
//	mp, err := observability.NewMeterProvider(observability.DefaultMeterConfig("lazykit"), reader)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("lazykit"))
//	metrics.RecordOperation(ctx, "fibonacci", "ok", elapsed)
package observability
