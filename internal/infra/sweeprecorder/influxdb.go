//go:build !gcloud

package sweeprecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SweepRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "sweep result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, sweep result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "sweep result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return newInfluxDBRecorder(client, cfg.InfluxDBOrg, cfg.InfluxDBBucket), nil
}

func newInfluxDBRecorder(client influxdb2.Client, org, bucket string) *influxDBRecorder {
	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
	}
}

func (r *influxDBRecorder) RecordDispatchSweep(ctx context.Context, record domain.DispatchSweepRecord) error {
	point := influxdb2.NewPoint(
		measurementDispatchSweep,
		map[string]string{
			"run_id": runIDOrDefault(record.RunID),
		},
		map[string]any{
			"processed":   record.Processed,
			"sent":        record.Sent,
			"failed":      record.Failed,
			"skipped":     record.Skipped,
			"duration_ms": record.Duration.Milliseconds(),
			"swept_unix":  record.SweptAt.Unix(),
		},
		time.Now(),
	)

	r.write(ctx, point, slog.String("measurement", measurementDispatchSweep))
	return nil
}

func (r *influxDBRecorder) RecordCalendarSync(ctx context.Context, record domain.CalendarSyncRecord) error {
	point := influxdb2.NewPoint(
		measurementCalendarSync,
		map[string]string{
			"run_id":    runIDOrDefault(record.RunID),
			"operation": record.Operation,
			"status":    string(record.Status),
		},
		map[string]any{
			"trip_id":       record.TripID,
			"created":       record.Created,
			"failed":        record.Failed,
			"deleted":       record.Deleted,
			"delete_failed": record.DeleteFailed,
			"duration_ms":   record.Duration.Milliseconds(),
		},
		time.Now(),
	)

	r.write(ctx, point, slog.String("measurement", measurementCalendarSync), slog.String("trip_id", record.TripID))
	return nil
}

func (r *influxDBRecorder) write(ctx context.Context, point *write.Point, attrs ...any) {
	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write sweep result to InfluxDB",
			append([]any{slog.String("error", err.Error())}, attrs...)...,
		)
	}
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func runIDOrDefault(runID string) string {
	if runID == "" {
		return "default"
	}
	return runID
}
