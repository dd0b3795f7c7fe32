package domain

import (
	"context"
	"time"
)

type DispatchSweepRecord struct {
	RunID     string
	SweptAt   time.Time
	Processed int
	Sent      int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

type CalendarSyncRecord struct {
	RunID        string
	TripID       string
	Operation    string
	Status       SyncStatus
	Created      int
	Failed       int
	Deleted      int
	DeleteFailed int
	Duration     time.Duration
}

// SweepRecorder stores operational results for dashboards. Implementations
// log write failures instead of returning them.
type SweepRecorder interface {
	RecordDispatchSweep(ctx context.Context, record DispatchSweepRecord) error
	RecordCalendarSync(ctx context.Context, record CalendarSyncRecord) error
	Flush(ctx context.Context) error
	Close() error
}
