// Package observability provides OpenTelemetry tracing and metrics for
// annotation runs.
//
// Tracing and metrics are exported over OTLP HTTP when enabled; otherwise the
// global no-op providers stay in place and every helper here is safe to call.
//
//	shutdown, err := observability.Setup(ctx, cfg)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanAnnotate)
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("convokit"))
//	metrics.RecordDetectorRun(ctx, "gap", "ok", elapsed, 3)
package observability
