package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	dispatchMeterName = "jetlag.dispatch"
)

type DispatchMetrics struct {
	emailsProcessed metric.Int64Counter
	sweepDuration   metric.Float64Histogram
	sendDuration    metric.Float64Histogram
	markSentRetries metric.Int64Counter
}

func NewDispatchMetrics() (*DispatchMetrics, error) {
	meter := otel.Meter(dispatchMeterName)

	emailsProcessed, err := meter.Int64Counter(
		"dispatch_emails_total",
		metric.WithDescription("Total number of due email schedules processed"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, err
	}

	sweepDuration, err := meter.Float64Histogram(
		"dispatch_sweep_duration_seconds",
		metric.WithDescription("Dispatch sweep duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	sendDuration, err := meter.Float64Histogram(
		"dispatch_send_duration_seconds",
		metric.WithDescription("Time spent handing one email to the transport"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	markSentRetries, err := meter.Int64Counter(
		"dispatch_mark_sent_retries_total",
		metric.WithDescription("Retries needed to persist a sent marker"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchMetrics{
		emailsProcessed: emailsProcessed,
		sweepDuration:   sweepDuration,
		sendDuration:    sendDuration,
		markSentRetries: markSentRetries,
	}, nil
}

func (m *DispatchMetrics) RecordEmailProcessed(ctx context.Context, emailType, outcome string) {
	m.emailsProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("email_type", emailType),
		attribute.String("outcome", outcome),
	))
}

func (m *DispatchMetrics) RecordSweepDuration(ctx context.Context, duration time.Duration) {
	m.sweepDuration.Record(ctx, duration.Seconds())
}

func (m *DispatchMetrics) RecordSendDuration(ctx context.Context, duration time.Duration) {
	m.sendDuration.Record(ctx, duration.Seconds())
}

func (m *DispatchMetrics) RecordMarkSentRetry(ctx context.Context) {
	m.markSentRetries.Add(ctx, 1)
}
