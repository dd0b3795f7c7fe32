// Package emailschedule keeps a trip's flight-day email record and its
// delayed dispatch task in step with the trip's schedule.
package emailschedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-jetlag/internal/service/sendtime"
	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

type Service struct {
	emails    domain.EmailScheduleRepository
	taskQueue taskqueue.TaskQueue
	now       func() time.Time
}

// NewService accepts a nil taskQueue; due records are then only picked up by
// periodic sweeps.
func NewService(emails domain.EmailScheduleRepository, taskQueue taskqueue.TaskQueue) *Service {
	return &Service{
		emails:    emails,
		taskQueue: taskQueue,
		now:       time.Now,
	}
}

// Schedule computes the send time from the trip's departure day and stores
// it. A changed send time clears any sent, failed or skipped state so the
// email goes out again; an already sent email at the same time is left alone.
func (s *Service) Schedule(ctx context.Context, trip *domain.Trip) (*domain.EmailSchedule, error) {
	if trip.Schedule == nil {
		return nil, domain.ErrScheduleNotGenerated
	}

	departureDate, err := trip.DepartureDate()
	if err != nil {
		return nil, err
	}

	first := ""
	if day, ok := trip.Schedule.Day(departureDate); ok {
		first = FirstInterventionTime(day.Items)
	}

	result, err := sendtime.Calculate(trip.DepartureDateTime, trip.OriginTZ, first)
	if err != nil {
		return nil, fmt.Errorf("calculate send time: %w", err)
	}

	existing, err := s.emails.Get(ctx, trip.ID, trip.UserID, domain.EmailTypeFlightDay)
	if err != nil && !errors.Is(err, domain.ErrEmailScheduleNotFound) {
		return nil, fmt.Errorf("load email schedule: %w", err)
	}

	if existing != nil && existing.SentAt != nil && existing.ScheduledFor.Equal(result.SendAt) {
		slog.DebugContext(ctx, "flight-day email already sent for this send time",
			slog.String("trip_id", trip.ID),
			slog.String("schedule_id", existing.ID),
		)
		return existing, nil
	}

	now := s.now()
	record := &domain.EmailSchedule{
		ID:            uuid.NewString(),
		TripID:        trip.ID,
		UserID:        trip.UserID,
		EmailType:     domain.EmailTypeFlightDay,
		ScheduledFor:  result.SendAt.UTC(),
		IsNightBefore: result.IsNightBefore,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.emails.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("save email schedule: %w", err)
	}

	slog.InfoContext(ctx, "flight-day email scheduled",
		slog.String("event", "email.schedule"),
		slog.String("trip_id", trip.ID),
		slog.String("schedule_id", record.ID),
		slog.Time("send_at", record.ScheduledFor),
		slog.Bool("night_before", record.IsNightBefore),
		slog.Bool("rescheduled", existing != nil),
	)

	s.registerTask(ctx, existing, record)

	return record, nil
}

// Cancel removes the flight-day email and its pending task.
func (s *Service) Cancel(ctx context.Context, tripID, userID string) error {
	existing, err := s.emails.Get(ctx, tripID, userID, domain.EmailTypeFlightDay)
	if errors.Is(err, domain.ErrEmailScheduleNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load email schedule: %w", err)
	}

	if s.taskQueue != nil && existing.SentAt == nil {
		if err := s.taskQueue.DeleteTask(ctx, taskqueue.TaskID(existing.ID, existing.ScheduledFor)); err != nil {
			slog.WarnContext(ctx, "failed to delete dispatch task",
				slog.String("schedule_id", existing.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.emails.Delete(ctx, tripID, userID, domain.EmailTypeFlightDay); err != nil {
		return fmt.Errorf("delete email schedule: %w", err)
	}

	slog.InfoContext(ctx, "flight-day email cancelled",
		slog.String("event", "email.cancel"),
		slog.String("trip_id", tripID),
		slog.String("schedule_id", existing.ID),
	)

	return nil
}

// registerTask is best effort: the record is the source of truth and a
// periodic sweep still delivers it if the task is missing.
func (s *Service) registerTask(ctx context.Context, previous, record *domain.EmailSchedule) {
	if s.taskQueue == nil {
		return
	}

	if previous != nil && previous.SentAt == nil && !previous.ScheduledFor.Equal(record.ScheduledFor) {
		if err := s.taskQueue.DeleteTask(ctx, taskqueue.TaskID(previous.ID, previous.ScheduledFor)); err != nil {
			slog.WarnContext(ctx, "failed to delete superseded dispatch task",
				slog.String("schedule_id", previous.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	_, err := s.taskQueue.RegisterDispatch(ctx, &taskqueue.DispatchTask{
		TaskID:     taskqueue.TaskID(record.ID, record.ScheduledFor),
		ScheduleAt: record.ScheduledFor,
		ScheduleID: record.ID,
		TripID:     record.TripID,
		UserID:     record.UserID,
		EmailType:  string(record.EmailType),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to register dispatch task",
			slog.String("event", "email.task.fail"),
			slog.String("schedule_id", record.ID),
			slog.String("error", err.Error()),
		)
	}
}

// FirstInterventionTime returns the earliest actionable origin-local
// intervention time in items, or "" when none has a valid time. Items timed in
// the destination zone are ignored.
func FirstInterventionTime(items []domain.Intervention) string {
	first, firstMinute := "", -1
	for _, item := range items {
		if !item.Type.IsActionable() || !item.Phase.UsesOrigin() {
			continue
		}
		minute, err := tz.ClockMinutes(item.Time)
		if err != nil {
			continue
		}
		if firstMinute < 0 || minute < firstMinute {
			first, firstMinute = item.Time, minute
		}
	}
	return first
}
