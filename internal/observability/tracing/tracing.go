package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const jetlagTracerName = "github.com/KasumiMercury/primind-jetlag/internal/service"

func JetlagTracer() trace.Tracer {
	return otel.Tracer(jetlagTracerName)
}

func StartDispatchSweepSpan(ctx context.Context, now time.Time, limit int) (context.Context, trace.Span) {
	return JetlagTracer().Start(ctx, "jetlag.dispatch_sweep",
		trace.WithAttributes(
			attribute.String("sweep.now", now.Format(time.RFC3339)),
			attribute.Int("sweep.limit", limit),
		),
	)
}

func StartEmailSendSpan(ctx context.Context, scheduleID, tripID string, nightBefore bool) (context.Context, trace.Span) {
	return JetlagTracer().Start(ctx, "jetlag.email_send",
		trace.WithAttributes(
			attribute.String("email_schedule_id", scheduleID),
			attribute.String("trip_id", tripID),
			attribute.Bool("email.night_before", nightBefore),
		),
	)
}

func StartCalendarSyncSpan(ctx context.Context, operation, tripID string) (context.Context, trace.Span) {
	return JetlagTracer().Start(ctx, "jetlag.calendar_sync."+operation,
		trace.WithAttributes(
			attribute.String("trip_id", tripID),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return JetlagTracer().Start(ctx, "jetlag.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordDispatchSweepResult(span trace.Span, processed, sent, failed, skipped int, err error) {
	span.SetAttributes(
		attribute.Int("sweep.processed_count", processed),
		attribute.Int("sweep.sent_count", sent),
		attribute.Int("sweep.failed_count", failed),
		attribute.Int("sweep.skipped_count", skipped),
	)
	RecordError(span, err)
}

func RecordCalendarSyncResult(span trace.Span, created, failed, deleted, deleteFailed int, err error) {
	span.SetAttributes(
		attribute.Int("calendar.created_count", created),
		attribute.Int("calendar.failed_count", failed),
		attribute.Int("calendar.deleted_count", deleted),
		attribute.Int("calendar.delete_failed_count", deleteFailed),
	)
	RecordError(span, err)
}

// RecordError sets the span status from err.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
