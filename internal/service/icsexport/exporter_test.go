package icsexport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

func tokyo(t domain.InterventionType, clock string) domain.Intervention {
	return domain.Intervention{
		Type:        t,
		Time:        clock,
		Phase:       domain.PhasePostArrival,
		Description: string(t) + " guidance.",
		DestTZ:      "Asia/Tokyo",
		DestDate:    "2026-01-22",
	}
}

func newTrip() *domain.Trip {
	return &domain.Trip{
		ID:                "trip-1",
		UserID:            "user-1",
		OriginTZ:          "America/Los_Angeles",
		DestTZ:            "Asia/Tokyo",
		DepartureDateTime: "2026-01-20T11:00:00",
		ArrivalDateTime:   "2026-01-21T16:00:00",
		UpdatedAt:         time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		Schedule: &domain.Schedule{Interventions: []domain.DaySchedule{
			{Day: 2, Date: "2026-01-22", Items: []domain.Intervention{
				tokyo(domain.InterventionWakeTarget, "07:00"),
				tokyo(domain.InterventionExercise, "17:00"),
			}},
		}},
	}
}

func TestExport(t *testing.T) {
	out, err := Export(context.Background(), newTrip())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	feed := string(out)

	wants := []string{
		"METHOD:PUBLISH",
		"UID:trip-1-20260121T220000Z-wake-target-",
		"DTSTART:20260121T220000Z",
		"DTSTART:20260122T080000Z",
		"DTSTAMP:20260110T090000Z",
		"TRANSP:TRANSPARENT",
		"TRANSP:OPAQUE",
		"TRIGGER:-PT15M",
	}
	for _, want := range wants {
		if !strings.Contains(feed, want) {
			t.Errorf("feed missing %q", want)
		}
	}

	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
	// The wake event starts at the day's wake time and carries no alarm.
	if got := strings.Count(feed, "BEGIN:VALARM"); got != 1 {
		t.Errorf("expected 1 alarm, got %d", got)
	}
}

func TestExportIsStable(t *testing.T) {
	first, err := Export(context.Background(), newTrip())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Export(context.Background(), newTrip())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(first) != string(second) {
		t.Error("exporting the same trip twice should produce the same feed")
	}
}

func TestExportWithoutSchedule(t *testing.T) {
	trip := newTrip()
	trip.Schedule = nil

	if _, err := Export(context.Background(), trip); !errors.Is(err, domain.ErrScheduleNotGenerated) {
		t.Errorf("expected ErrScheduleNotGenerated, got %v", err)
	}
}

func TestEventUIDDistinguishesSameStartAndType(t *testing.T) {
	start := time.Date(2026, 1, 22, 8, 0, 0, 0, time.UTC)
	light := &domain.CalendarEvent{
		AnchorType: domain.InterventionLightSeek,
		Summary:    "Seek light",
		Start:      start,
		End:        start.Add(30 * time.Minute),
	}
	longer := &domain.CalendarEvent{
		AnchorType: domain.InterventionLightSeek,
		Summary:    "Seek light",
		Start:      start,
		End:        start.Add(60 * time.Minute),
	}
	renamed := &domain.CalendarEvent{
		AnchorType: domain.InterventionLightSeek,
		Summary:    "Seek light + Melatonin",
		Start:      start,
		End:        start.Add(30 * time.Minute),
	}

	uid := EventUID("trip-1", light)
	if !strings.HasPrefix(uid, "trip-1-20260122T080000Z-light-seek-") || !strings.HasSuffix(uid, "@primind-jetlag") {
		t.Errorf("unexpected uid %q", uid)
	}
	if uid != EventUID("trip-1", light) {
		t.Error("uid should be stable for the same event")
	}
	if uid == EventUID("trip-1", longer) || uid == EventUID("trip-1", renamed) {
		t.Error("events sharing start and anchor type should get distinct uids")
	}
}
