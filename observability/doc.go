// Package observability provides OpenTelemetry tracing and metrics for
// schedule projection.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("sporeplan")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanSchedule)
//	defer span.End()
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("sporeplan")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("sporeplan"))
//	metrics.RecordSchedule(ctx, "linear", "ok", 7, elapsed)
//
// When neither is initialized the global no-op providers are used and every
// helper is safe to call.
package observability
