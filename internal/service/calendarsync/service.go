// Package calendarsync runs a user's calendar sync for one trip: it removes
// the events of the previous sync, writes the current schedule and records
// what it did.
package calendarsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/metrics"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/tracing"
	"github.com/KasumiMercury/primind-jetlag/internal/service/reconcile"
)

const (
	DefaultLockTTL    = 5 * time.Minute
	DefaultStaleAfter = 10 * time.Minute

	operationSync   = "sync"
	operationRemove = "remove"
)

type Config struct {
	LockTTL    time.Duration
	StaleAfter time.Duration
}

type Service struct {
	trips           domain.TripRepository
	users           domain.UserRepository
	syncs           domain.CalendarSyncRepository
	provider        domain.CalendarProvider
	reconciler      *reconcile.Service
	locker          domain.Locker
	recorder        domain.SweepRecorder
	calendarMetrics *metrics.CalendarMetrics
	cfg             Config
	now             func() time.Time
}

func NewService(
	trips domain.TripRepository,
	users domain.UserRepository,
	syncs domain.CalendarSyncRepository,
	provider domain.CalendarProvider,
	reconciler *reconcile.Service,
	locker domain.Locker,
	recorder domain.SweepRecorder,
	calendarMetrics *metrics.CalendarMetrics,
	cfg Config,
) *Service {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultLockTTL
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}

	return &Service{
		trips:           trips,
		users:           users,
		syncs:           syncs,
		provider:        provider,
		reconciler:      reconciler,
		locker:          locker,
		recorder:        recorder,
		calendarMetrics: calendarMetrics,
		cfg:             cfg,
		now:             time.Now,
	}
}

// Sync replaces the trip's calendar events. Events from the previous sync
// are deleted first; if any of them cannot be deleted the sync stops before
// creating anything, keeping the ids that are still out there.
func (s *Service) Sync(ctx context.Context, tripID, userID string) (*SyncResult, error) {
	start := time.Now()

	ctx, span := tracing.StartCalendarSyncSpan(ctx, operationSync, tripID)
	defer span.End()

	trip, user, err := s.load(ctx, tripID, userID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if trip.Schedule == nil {
		tracing.RecordError(span, domain.ErrScheduleNotGenerated)
		return nil, domain.ErrScheduleNotGenerated
	}

	release, err := s.lock(ctx, tripID, userID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	defer release()

	cal, err := s.provider.ForUser(ctx, user)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("open calendar: %w", err)
	}

	record, err := s.syncs.Get(ctx, tripID, userID)
	if err != nil && !errors.Is(err, domain.ErrCalendarSyncNotFound) {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("load calendar sync: %w", err)
	}
	if record == nil {
		record = &domain.CalendarSync{
			ID:        uuid.NewString(),
			TripID:    tripID,
			UserID:    userID,
			CreatedAt: s.now(),
		}
	}

	record.Status = domain.SyncStatusSyncing
	record.ErrorMessage = ""
	record.UpdatedAt = s.now()
	if err := s.syncs.Save(ctx, record); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("save calendar sync: %w", err)
	}

	result := &SyncResult{TripID: tripID}

	if len(record.EventIDs) > 0 {
		deleted := s.reconciler.DeleteEvents(ctx, cal, record.EventIDs)
		result.Deleted = len(deleted.Deleted)

		if len(deleted.Failed) > 0 {
			err := fmt.Errorf("%w: %d of %d events", domain.ErrCalendarDeleteFailed, len(deleted.Failed), len(record.EventIDs))
			record.EventIDs = deleted.Failed
			result.DeleteFailed = deleted.Failed
			result.EventIDs = deleted.Failed
			s.finish(ctx, record, result, err, start)
			tracing.RecordCalendarSyncResult(span, 0, 0, result.Deleted, len(deleted.Failed), err)
			return result, err
		}

		record.EventIDs = nil
	}

	created, err := s.reconciler.CreateEvents(ctx, cal, trip)
	if err != nil {
		s.finish(ctx, record, result, err, start)
		tracing.RecordCalendarSyncResult(span, 0, 0, result.Deleted, 0, err)
		return nil, fmt.Errorf("create calendar events: %w", err)
	}

	record.EventIDs = created.Created
	record.EventsCreated = len(created.Created)
	record.EventsFailed = created.Failed

	result.EventIDs = created.Created
	result.Created = len(created.Created)
	result.Patched = created.Patched
	result.Failed = created.Failed

	var syncErr error
	if result.Created == 0 && result.Failed > 0 {
		syncErr = fmt.Errorf("all %d calendar events failed", result.Failed)
	}

	s.finish(ctx, record, result, syncErr, start)
	tracing.RecordCalendarSyncResult(span, result.Created, result.Failed, result.Deleted, 0, syncErr)

	return result, nil
}

// Remove deletes the trip's synced events and always drops the local record,
// even when some remote deletions fail.
func (s *Service) Remove(ctx context.Context, tripID, userID string) (*RemoveResult, error) {
	start := time.Now()

	ctx, span := tracing.StartCalendarSyncSpan(ctx, operationRemove, tripID)
	defer span.End()

	record, err := s.syncs.Get(ctx, tripID, userID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	release, err := s.lock(ctx, tripID, userID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	defer release()

	result := &RemoveResult{TripID: tripID, Deleted: []string{}, Failed: []string{}}

	if len(record.EventIDs) > 0 {
		cal, err := s.openForUser(ctx, userID)
		if err != nil {
			slog.WarnContext(ctx, "cannot open calendar, dropping sync record only",
				slog.String("trip_id", tripID),
				slog.String("error", err.Error()),
			)
			result.Failed = record.EventIDs
		} else {
			deleted := s.reconciler.DeleteEvents(ctx, cal, record.EventIDs)
			result.Deleted = deleted.Deleted
			result.Failed = deleted.Failed
		}
	}

	if err := s.syncs.Delete(ctx, tripID, userID); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("delete calendar sync: %w", err)
	}

	status := domain.SyncStatusCompleted
	if len(result.Failed) > 0 {
		status = domain.SyncStatusFailed
	}
	s.record(ctx, domain.CalendarSyncRecord{
		TripID:       tripID,
		Operation:    operationRemove,
		Status:       status,
		Deleted:      len(result.Deleted),
		DeleteFailed: len(result.Failed),
		Duration:     time.Since(start),
	})
	tracing.RecordCalendarSyncResult(span, 0, 0, len(result.Deleted), len(result.Failed), nil)

	slog.InfoContext(ctx, "calendar sync removed",
		slog.String("event", "calendar.sync.remove"),
		slog.String("trip_id", tripID),
		slog.Int("deleted", len(result.Deleted)),
		slog.Int("failed", len(result.Failed)),
	)

	return result, nil
}

// Status reports the stored sync, treating a sync stuck in syncing for
// longer than StaleAfter as failed.
func (s *Service) Status(ctx context.Context, tripID, userID string) (*StatusResult, error) {
	record, err := s.syncs.Get(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		TripID:        tripID,
		Status:        record.EffectiveStatus(s.now(), s.cfg.StaleAfter),
		EventsCreated: record.EventsCreated,
		EventsFailed:  record.EventsFailed,
		ErrorMessage:  record.ErrorMessage,
		LastSyncedAt:  record.LastSyncedAt,
	}, nil
}

func (s *Service) load(ctx context.Context, tripID, userID string) (*domain.Trip, *domain.User, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	if trip.UserID != userID {
		return nil, nil, domain.ErrTripNotFound
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user.GoogleRefreshToken == "" {
		return nil, nil, domain.ErrCalendarNotConnected
	}

	return trip, user, nil
}

func (s *Service) openForUser(ctx context.Context, userID string) (domain.RemoteCalendar, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.GoogleRefreshToken == "" {
		return nil, domain.ErrCalendarNotConnected
	}
	return s.provider.ForUser(ctx, user)
}

func (s *Service) lock(ctx context.Context, tripID, userID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	key := fmt.Sprintf("jetlag:calendar-sync:%s:%s", tripID, userID)
	token, ok, err := s.locker.Acquire(ctx, key, s.cfg.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire calendar sync lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrCalendarSyncInProgress
	}

	return func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			slog.WarnContext(ctx, "failed to release calendar sync lock",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}, nil
}

// finish stores the final state of a sync run and reports it.
func (s *Service) finish(ctx context.Context, record *domain.CalendarSync, result *SyncResult, syncErr error, start time.Time) {
	now := s.now()
	record.UpdatedAt = now

	if syncErr != nil {
		record.Status = domain.SyncStatusFailed
		record.ErrorMessage = syncErr.Error()
	} else {
		record.Status = domain.SyncStatusCompleted
		record.ErrorMessage = ""
		record.LastSyncedAt = &now
	}
	result.Status = record.Status

	if err := s.syncs.Save(ctx, record); err != nil {
		slog.ErrorContext(ctx, "failed to save calendar sync result",
			slog.String("trip_id", record.TripID),
			slog.String("status", string(record.Status)),
			slog.String("error", err.Error()),
		)
	}

	s.record(ctx, domain.CalendarSyncRecord{
		TripID:       record.TripID,
		Operation:    operationSync,
		Status:       record.Status,
		Created:      result.Created,
		Failed:       result.Failed,
		Deleted:      result.Deleted,
		DeleteFailed: len(result.DeleteFailed),
		Duration:     time.Since(start),
	})

	slog.InfoContext(ctx, "calendar sync finished",
		slog.String("event", "calendar.sync.finish"),
		slog.String("trip_id", record.TripID),
		slog.String("status", string(record.Status)),
		slog.Int("created", result.Created),
		slog.Int("patched", result.Patched),
		slog.Int("failed", result.Failed),
		slog.Int("deleted", result.Deleted),
		slog.Int("delete_failed", len(result.DeleteFailed)),
	)
}

func (s *Service) record(ctx context.Context, rec domain.CalendarSyncRecord) {
	if s.calendarMetrics != nil {
		s.calendarMetrics.RecordSync(ctx, rec.Operation, string(rec.Status), rec.Duration)
	}

	if s.recorder != nil {
		rec.RunID = uuid.NewString()
		if err := s.recorder.RecordCalendarSync(ctx, rec); err != nil {
			slog.WarnContext(ctx, "failed to record calendar sync",
				slog.String("trip_id", rec.TripID),
				slog.String("error", err.Error()),
			)
		}
	}
}
