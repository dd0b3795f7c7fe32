// Package icsexport renders a trip's calendar events as an iCalendar feed.
package icsexport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/service/reconcile"
)

const (
	productID = "-//primind//jetlag//EN"
	uidDomain = "primind-jetlag"

	calendarName = "Jet lag plan"
)

// Export builds the same event set a calendar sync would write. Groups that
// cannot be synthesized are left out of the feed.
func Export(ctx context.Context, trip *domain.Trip) ([]byte, error) {
	plan, err := reconcile.BuildPlan(ctx, trip)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(calendarName)

	for _, ev := range plan.Events {
		addEvent(cal, trip, ev)
	}

	if plan.Failed > 0 {
		slog.WarnContext(ctx, "calendar feed is missing events",
			slog.String("trip_id", trip.ID),
			slog.Int("failed", plan.Failed),
		)
	}

	return []byte(cal.Serialize()), nil
}

func addEvent(cal *ics.Calendar, trip *domain.Trip, ev *domain.CalendarEvent) {
	e := cal.AddEvent(EventUID(trip.ID, ev))
	e.SetDtStampTime(trip.UpdatedAt.UTC())
	e.SetStartAt(ev.Start.UTC())
	e.SetEndAt(ev.End.UTC())
	e.SetSummary(ev.Summary)
	e.SetDescription(ev.Description)

	if ev.Busy {
		e.SetTimeTransparency(ics.TransparencyOpaque)
	} else {
		e.SetTimeTransparency(ics.TransparencyTransparent)
	}

	if ev.ReminderMinutes > 0 {
		alarm := e.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetSummary(ev.Summary)
		alarm.SetTrigger(fmt.Sprintf("-PT%dM", ev.ReminderMinutes))
	}
}

// EventUID is stable across exports so calendar clients update events in
// place. Events sharing a start and anchor type differ by the digest of their
// summary and end.
func EventUID(tripID string, ev *domain.CalendarEvent) string {
	anchor := strings.ReplaceAll(ev.AnchorType.String(), "_", "-")
	digest := uuid.NewSHA1(uuid.NameSpaceOID, []byte(ev.Summary+"|"+ev.End.UTC().Format(time.RFC3339))).String()[:8]
	return fmt.Sprintf("%s-%s-%s-%s@%s", tripID, ev.Start.UTC().Format("20060102T150405Z"), anchor, digest, uidDomain)
}
