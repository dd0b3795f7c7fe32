package sweeprecorder

import (
	"context"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.SweepRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordDispatchSweep(_ context.Context, _ domain.DispatchSweepRecord) error {
	return nil
}

func (n *noopRecorder) RecordCalendarSync(_ context.Context, _ domain.CalendarSyncRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
