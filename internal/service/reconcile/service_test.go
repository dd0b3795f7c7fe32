package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/service/eventsynth"
)

type countingWaiter struct {
	calls int
	err   error
}

func (w *countingWaiter) Wait(_ context.Context) error {
	w.calls++
	return w.err
}

func arrival(t domain.InterventionType, clock, destDate string) domain.Intervention {
	return domain.Intervention{
		Type:        t,
		Time:        clock,
		Phase:       domain.PhasePostArrival,
		Description: string(t) + " guidance.",
		OriginTZ:    "America/Los_Angeles",
		OriginDate:  "2026-01-20",
		DestTZ:      "Asia/Tokyo",
		DestDate:    destDate,
	}
}

func newTrip(days ...domain.DaySchedule) *domain.Trip {
	return &domain.Trip{
		ID:                "trip-1",
		UserID:            "user-1",
		OriginTZ:          "America/Los_Angeles",
		DestTZ:            "Asia/Tokyo",
		DepartureDateTime: "2026-01-20T11:00:00",
		ArrivalDateTime:   "2026-01-21T16:00:00",
		Schedule:          &domain.Schedule{Interventions: days},
	}
}

func TestBuildPlanWakeDedupAcrossDays(t *testing.T) {
	trip := newTrip(
		domain.DaySchedule{Day: 1, Date: "2026-01-21", Items: []domain.Intervention{
			arrival(domain.InterventionWakeTarget, "07:00", "2026-01-22"),
			arrival(domain.InterventionLightSeek, "07:15", "2026-01-22"),
		}},
		domain.DaySchedule{Day: 2, Date: "2026-01-22", Items: []domain.Intervention{
			arrival(domain.InterventionWakeTarget, "07:45", "2026-01-22"),
			arrival(domain.InterventionMelatonin, "08:00", "2026-01-22"),
			arrival(domain.InterventionLightSeek, "08:10", "2026-01-22"),
		}},
	)

	plan, err := BuildPlan(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(plan.Events))
	}

	wakes := 0
	summaries := make([]string, 0, len(plan.Events))
	for _, ev := range plan.Events {
		if ev.AnchorType == domain.InterventionWakeTarget {
			wakes++
		}
		summaries = append(summaries, ev.Summary)
	}
	if wakes != 1 {
		t.Errorf("expected exactly one wake event, got %d (%v)", wakes, summaries)
	}

	if plan.Events[0].Summary != "⏰ Wake up: Light" {
		t.Errorf("first event: got %q", plan.Events[0].Summary)
	}
	if plan.Events[1].AnchorType != domain.InterventionMelatonin {
		t.Errorf("suppressed wake's melatonin should be standalone, got %s", plan.Events[1].AnchorType)
	}
	if plan.Events[2].AnchorType != domain.InterventionLightSeek {
		t.Errorf("suppressed wake's light should be standalone, got %s", plan.Events[2].AnchorType)
	}
}

func TestBuildPlanWakesOnDifferentDatesAreKept(t *testing.T) {
	trip := newTrip(
		domain.DaySchedule{Day: 1, Date: "2026-01-22", Items: []domain.Intervention{
			arrival(domain.InterventionWakeTarget, "07:00", "2026-01-22"),
		}},
		domain.DaySchedule{Day: 2, Date: "2026-01-23", Items: []domain.Intervention{
			arrival(domain.InterventionWakeTarget, "07:00", "2026-01-23"),
		}},
		domain.DaySchedule{Day: 3, Date: "2026-01-24", Items: []domain.Intervention{
			arrival(domain.InterventionWakeTarget, "07:00", "2026-01-23"),
			arrival(domain.InterventionWakeTarget, "10:00", "2026-01-23"),
		}},
	)

	plan, err := BuildPlan(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Day 3's 07:00 wake duplicates day 2. Its 10:00 wake is outside the
	// window and stays.
	if len(plan.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(plan.Events))
	}
}

func TestBuildPlanResolvesFlightOffsets(t *testing.T) {
	offset := 5.5
	trip := newTrip(domain.DaySchedule{Day: 0, Date: "2026-01-20", Items: []domain.Intervention{
		{
			Type:              domain.InterventionNapWindow,
			Phase:             domain.PhaseInTransit,
			FlightOffsetHours: &offset,
			Description:       "Sleep on the plane.",
		},
	}})

	plan, err := BuildPlan(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Events) != 1 {
		t.Fatalf("expected 1 event, got %d (failed %d)", len(plan.Events), plan.Failed)
	}

	// 11:00 PST departure is 19:00Z; plus 5.5h is 00:30Z, 09:30 in Tokyo.
	want := time.Date(2026, 1, 21, 0, 30, 0, 0, time.UTC)
	if !plan.Events[0].Start.Equal(want) {
		t.Errorf("start: got %v, want %v", plan.Events[0].Start.UTC(), want)
	}
	if plan.Events[0].Date != "2026-01-21" {
		t.Errorf("date: got %s, want 2026-01-21", plan.Events[0].Date)
	}
	if !plan.Events[0].Busy {
		t.Error("nap should be busy")
	}
}

func TestBuildPlanCountsMissingContext(t *testing.T) {
	broken := arrival(domain.InterventionMelatonin, "21:00", "2026-01-22")
	broken.DestTZ = ""
	trip := newTrip(domain.DaySchedule{Day: 1, Date: "2026-01-22", Items: []domain.Intervention{
		arrival(domain.InterventionWakeTarget, "07:00", "2026-01-22"),
		broken,
	}})

	plan, err := BuildPlan(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Events) != 1 || plan.Failed != 1 {
		t.Errorf("expected 1 event and 1 failure, got %d and %d", len(plan.Events), plan.Failed)
	}
}

func TestBuildPlanWithoutSchedule(t *testing.T) {
	trip := newTrip()
	trip.Schedule = nil

	if _, err := BuildPlan(context.Background(), trip); !errors.Is(err, domain.ErrScheduleNotGenerated) {
		t.Errorf("expected ErrScheduleNotGenerated, got %v", err)
	}
}

func TestCreateEventsInsertsAndThrottles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cal := domain.NewMockRemoteCalendar(ctrl)
	waiter := &countingWaiter{}

	trip := newTrip(domain.DaySchedule{Day: 1, Date: "2026-01-22", Items: []domain.Intervention{
		arrival(domain.InterventionWakeTarget, "07:00", "2026-01-22"),
		arrival(domain.InterventionSleepTarget, "23:00", "2026-01-22"),
	}})

	cal.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	inserted := 0
	cal.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ev *domain.CalendarEvent) (string, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected remote call to carry a deadline")
			}
			inserted++
			return fmt.Sprintf("evt-%d", inserted), nil
		}).
		Times(2)

	svc := NewService(waiter, time.Second, nil)
	result, err := svc.CreateEvents(context.Background(), cal, trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 2 || result.Created[0] != "evt-1" || result.Created[1] != "evt-2" {
		t.Errorf("unexpected created ids: %v", result.Created)
	}
	if result.Failed != 0 {
		t.Errorf("Failed: got %d, want 0", result.Failed)
	}
	if waiter.calls != 4 {
		t.Errorf("expected 4 throttled calls, got %d", waiter.calls)
	}
}

func TestCreateEventsPatchesExistingMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cal := domain.NewMockRemoteCalendar(ctrl)

	trip := newTrip(domain.DaySchedule{Day: 1, Date: "2026-01-22", Items: []domain.Intervention{
		arrival(domain.InterventionSleepTarget, "23:00", "2026-01-22"),
	}})

	start := time.Date(2026, 1, 22, 14, 0, 0, 0, time.UTC)
	end := start.Add(15 * time.Minute)

	cal.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RemoteEvent{
			{ID: "other", Summary: "😴 Bedtime", Description: "user made this", Start: start, End: end},
			{ID: "moved", Summary: "😴 Bedtime", Description: eventsynth.AttributionMarker, Start: start.Add(time.Minute), End: end},
			{ID: "existing", Summary: "😴 Bedtime", Description: "• x\n\n" + eventsynth.AttributionMarker, Start: start, End: end},
		}, nil)
	cal.EXPECT().Patch(gomock.Any(), "existing", gomock.Any()).Return(nil)

	svc := NewService(nil, time.Second, nil)
	result, err := svc.CreateEvents(context.Background(), cal, trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 1 || result.Created[0] != "existing" {
		t.Errorf("expected existing id to be reused, got %v", result.Created)
	}
	if result.Patched != 1 {
		t.Errorf("Patched: got %d, want 1", result.Patched)
	}
}

func TestCreateEventsIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cal := domain.NewMockRemoteCalendar(ctrl)

	trip := newTrip(domain.DaySchedule{Day: 1, Date: "2026-01-22", Items: []domain.Intervention{
		arrival(domain.InterventionWakeTarget, "07:00", "2026-01-22"),
		arrival(domain.InterventionCaffeineCutoff, "14:00", "2026-01-22"),
		arrival(domain.InterventionSleepTarget, "23:00", "2026-01-22"),
	}})

	gomock.InOrder(
		cal.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil),
		cal.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("wake", nil),
		cal.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom: %w", domain.ErrCalendarRateLimited)),
		// Non-transient search failure falls back to insert.
		cal.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("bad response")),
		cal.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("sleep", nil),
	)

	svc := NewService(nil, time.Second, nil)
	result, err := svc.CreateEvents(context.Background(), cal, trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Join(result.Created, ",") != "wake,sleep" {
		t.Errorf("unexpected created ids: %v", result.Created)
	}
	if result.Failed != 1 {
		t.Errorf("Failed: got %d, want 1", result.Failed)
	}
}

func TestDeleteEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cal := domain.NewMockRemoteCalendar(ctrl)
	waiter := &countingWaiter{}

	gomock.InOrder(
		cal.EXPECT().Delete(gomock.Any(), "a").Return(nil),
		cal.EXPECT().Delete(gomock.Any(), "gone").Return(fmt.Errorf("delete gone: %w", domain.ErrRemoteEventNotFound)),
		cal.EXPECT().Delete(gomock.Any(), "broken").Return(fmt.Errorf("delete: %w", domain.ErrCalendarUnavailable)),
		cal.EXPECT().Delete(gomock.Any(), "b").Return(nil),
	)

	svc := NewService(waiter, time.Second, nil)
	result := svc.DeleteEvents(context.Background(), cal, []string{"a", "gone", "broken", "b"})

	if strings.Join(result.Deleted, ",") != "a,gone,b" {
		t.Errorf("Deleted: got %v", result.Deleted)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "broken" {
		t.Errorf("Failed: got %v", result.Failed)
	}
	if waiter.calls != 4 {
		t.Errorf("expected 4 throttled calls, got %d", waiter.calls)
	}
}

func TestDeleteEventsThrottleCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cal := domain.NewMockRemoteCalendar(ctrl)
	waiter := &countingWaiter{err: context.Canceled}

	svc := NewService(waiter, time.Second, nil)
	result := svc.DeleteEvents(context.Background(), cal, []string{"a", "b"})

	if len(result.Deleted) != 0 || len(result.Failed) != 2 {
		t.Errorf("expected both ids to fail, got deleted=%v failed=%v", result.Deleted, result.Failed)
	}
}
