//go:build gcloud

package sweeprecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type dispatchSweepRow struct {
	RecordedAt time.Time `bigquery:"recorded_at"`
	RunID      string    `bigquery:"run_id"`
	SweptAt    time.Time `bigquery:"swept_at"`
	Processed  int64     `bigquery:"processed"`
	Sent       int64     `bigquery:"sent"`
	Failed     int64     `bigquery:"failed"`
	Skipped    int64     `bigquery:"skipped"`
	DurationMS int64     `bigquery:"duration_ms"`
}

type calendarSyncRow struct {
	RecordedAt   time.Time `bigquery:"recorded_at"`
	RunID        string    `bigquery:"run_id"`
	TripID       string    `bigquery:"trip_id"`
	Operation    string    `bigquery:"operation"`
	Status       string    `bigquery:"status"`
	Created      int64     `bigquery:"created"`
	Failed       int64     `bigquery:"failed"`
	Deleted      int64     `bigquery:"deleted"`
	DeleteFailed int64     `bigquery:"delete_failed"`
	DurationMS   int64     `bigquery:"duration_ms"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	dispatch *bigquery.Inserter
	calendar *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SweepRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "sweep result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, sweep result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, sweep result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "sweep result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
	)

	return &bigQueryRecorder{
		client:   client,
		dispatch: dataset.Table(cfg.BigQueryDispatchTable).Inserter(),
		calendar: dataset.Table(cfg.BigQueryCalendarTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordDispatchSweep(ctx context.Context, record domain.DispatchSweepRecord) error {
	row := &dispatchSweepRow{
		RecordedAt: time.Now(),
		RunID:      record.RunID,
		SweptAt:    record.SweptAt,
		Processed:  int64(record.Processed),
		Sent:       int64(record.Sent),
		Failed:     int64(record.Failed),
		Skipped:    int64(record.Skipped),
		DurationMS: record.Duration.Milliseconds(),
	}

	if err := r.dispatch.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert dispatch sweep result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordCalendarSync(ctx context.Context, record domain.CalendarSyncRecord) error {
	row := &calendarSyncRow{
		RecordedAt:   time.Now(),
		RunID:        record.RunID,
		TripID:       record.TripID,
		Operation:    record.Operation,
		Status:       string(record.Status),
		Created:      int64(record.Created),
		Failed:       int64(record.Failed),
		Deleted:      int64(record.Deleted),
		DeleteFailed: int64(record.DeleteFailed),
		DurationMS:   record.Duration.Milliseconds(),
	}

	if err := r.calendar.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert calendar sync result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("trip_id", record.TripID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
