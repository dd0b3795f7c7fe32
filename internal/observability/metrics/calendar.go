package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	calendarMeterName = "jetlag.calendar"
)

type CalendarMetrics struct {
	eventOperations metric.Int64Counter
	syncDuration    metric.Float64Histogram
	syncOutcomes    metric.Int64Counter
}

func NewCalendarMetrics() (*CalendarMetrics, error) {
	meter := otel.Meter(calendarMeterName)

	eventOperations, err := meter.Int64Counter(
		"calendar_event_operations_total",
		metric.WithDescription("Remote calendar event writes and deletes"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	syncDuration, err := meter.Float64Histogram(
		"calendar_sync_duration_seconds",
		metric.WithDescription("Duration of a full calendar sync or removal"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.5, 1, 2.5, 5, 10, 20, 30, 60, 120,
		),
	)
	if err != nil {
		return nil, err
	}

	syncOutcomes, err := meter.Int64Counter(
		"calendar_sync_total",
		metric.WithDescription("Calendar sync runs by final status"),
		metric.WithUnit("{sync}"),
	)
	if err != nil {
		return nil, err
	}

	return &CalendarMetrics{
		eventOperations: eventOperations,
		syncDuration:    syncDuration,
		syncOutcomes:    syncOutcomes,
	}, nil
}

func (m *CalendarMetrics) RecordEventOperation(ctx context.Context, operation, outcome string) {
	m.eventOperations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *CalendarMetrics) RecordSync(ctx context.Context, operation, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.syncOutcomes.Add(ctx, 1, attrs)
	m.syncDuration.Record(ctx, duration.Seconds(), attrs)
}
