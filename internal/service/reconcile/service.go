// Package reconcile writes a trip's calendar events to a remote calendar
// without creating duplicates, and removes them again.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/metrics"
	"github.com/KasumiMercury/primind-jetlag/internal/service/eventsynth"
)

const defaultCallTimeout = 10 * time.Second

// Waiter paces remote calls. *rate.Limiter satisfies it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Service issues remote calls one at a time, each after Wait returns and each
// bounded by its own timeout.
type Service struct {
	throttle        Waiter
	callTimeout     time.Duration
	calendarMetrics *metrics.CalendarMetrics
}

func NewService(throttle Waiter, callTimeout time.Duration, calendarMetrics *metrics.CalendarMetrics) *Service {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	return &Service{
		throttle:        throttle,
		callTimeout:     callTimeout,
		calendarMetrics: calendarMetrics,
	}
}

// CreateEvents writes every planned event for the trip. A remote event with
// the same start, end and title whose description carries the attribution
// marker is patched and its id reused instead of inserting a duplicate.
// Failures are counted per event and never stop the rest.
func (s *Service) CreateEvents(ctx context.Context, cal domain.RemoteCalendar, trip *domain.Trip) (*CreateEventsResult, error) {
	plan, err := BuildPlan(ctx, trip)
	if err != nil {
		return nil, err
	}

	result := &CreateEventsResult{
		Created: make([]string, 0, len(plan.Events)),
		Failed:  plan.Failed,
	}

	for _, ev := range plan.Events {
		id, patched, err := s.upsert(ctx, cal, ev)
		if err != nil {
			slog.WarnContext(ctx, "failed to write calendar event",
				slog.String("trip_id", trip.ID),
				slog.String("summary", ev.Summary),
				slog.Time("start", ev.Start),
				slog.Bool("transient", domain.IsTransient(err)),
				slog.String("error", err.Error()),
			)
			result.Failed++
			s.record(ctx, "create", "failed")
			continue
		}

		result.Created = append(result.Created, id)
		if patched {
			result.Patched++
			s.record(ctx, "patch", "success")
		} else {
			s.record(ctx, "insert", "success")
		}
	}

	slog.InfoContext(ctx, "calendar events written",
		slog.String("trip_id", trip.ID),
		slog.Int("created", len(result.Created)),
		slog.Int("patched", result.Patched),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

func (s *Service) upsert(ctx context.Context, cal domain.RemoteCalendar, ev *domain.CalendarEvent) (string, bool, error) {
	existing, err := s.findExisting(ctx, cal, ev)
	if err != nil {
		if domain.IsTransient(err) || errors.Is(err, domain.ErrCalendarAuthRevoked) {
			return "", false, err
		}
		// The search only guards against duplicates; insert anyway.
		slog.WarnContext(ctx, "failed to search remote calendar, inserting",
			slog.String("summary", ev.Summary),
			slog.String("error", err.Error()),
		)
	}

	if existing != "" {
		err := s.call(ctx, func(callCtx context.Context) error {
			return cal.Patch(callCtx, existing, ev)
		})
		if err != nil {
			return "", false, err
		}
		return existing, true, nil
	}

	var id string
	err = s.call(ctx, func(callCtx context.Context) error {
		var insertErr error
		id, insertErr = cal.Insert(callCtx, ev)
		return insertErr
	})
	if err != nil {
		return "", false, err
	}

	return id, false, nil
}

func (s *Service) findExisting(ctx context.Context, cal domain.RemoteCalendar, ev *domain.CalendarEvent) (string, error) {
	var found []domain.RemoteEvent
	err := s.call(ctx, func(callCtx context.Context) error {
		var listErr error
		found, listErr = cal.List(callCtx, ev.Start, ev.End)
		return listErr
	})
	if err != nil {
		return "", err
	}

	for _, remote := range found {
		if remote.Start.Equal(ev.Start) &&
			remote.End.Equal(ev.End) &&
			remote.Summary == ev.Summary &&
			strings.Contains(remote.Description, eventsynth.AttributionMarker) {
			return remote.ID, nil
		}
	}

	return "", nil
}

// DeleteEvents removes each id in turn. Ids that are already gone count as
// deleted. Other failures are collected and the rest are still attempted.
func (s *Service) DeleteEvents(ctx context.Context, cal domain.RemoteCalendar, ids []string) *DeleteEventsResult {
	result := &DeleteEventsResult{
		Deleted: make([]string, 0, len(ids)),
		Failed:  make([]string, 0),
	}

	for _, id := range ids {
		err := s.call(ctx, func(callCtx context.Context) error {
			return cal.Delete(callCtx, id)
		})

		switch {
		case err == nil:
			result.Deleted = append(result.Deleted, id)
			s.record(ctx, "delete", "success")
		case errors.Is(err, domain.ErrRemoteEventNotFound):
			slog.DebugContext(ctx, "calendar event already gone",
				slog.String("event_id", id),
			)
			result.Deleted = append(result.Deleted, id)
			s.record(ctx, "delete", "not_found")
		default:
			slog.WarnContext(ctx, "failed to delete calendar event",
				slog.String("event_id", id),
				slog.Bool("transient", domain.IsTransient(err)),
				slog.String("error", err.Error()),
			)
			result.Failed = append(result.Failed, id)
			s.record(ctx, "delete", "failed")
		}
	}

	return result
}

func (s *Service) call(ctx context.Context, fn func(context.Context) error) error {
	if s.throttle != nil {
		if err := s.throttle.Wait(ctx); err != nil {
			return err
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	return fn(callCtx)
}

func (s *Service) record(ctx context.Context, operation, outcome string) {
	if s.calendarMetrics != nil {
		s.calendarMetrics.RecordEventOperation(ctx, operation, outcome)
	}
}
