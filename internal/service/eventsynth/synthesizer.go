// Package eventsynth turns an intervention group into a calendar event.
package eventsynth

import (
	"fmt"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/service/grouping"
	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

const (
	MinDurationMinutes     = 15
	defaultReminderMinutes = 15

	// AttributionMarker identifies events this service created when searching
	// a remote calendar.
	AttributionMarker = "[primind-jetlag]"
	attributionFooter = "Added by Primind Jetlag " + AttributionMarker
)

// Synthesize builds the event for g. dayWakeTime is the day's wake target
// ("HH:MM", may be empty); events at that time get no advance reminder.
func Synthesize(g grouping.Group, dayWakeTime string) (*domain.CalendarEvent, error) {
	anchor := g.Anchor

	ec, err := domain.EffectiveContext(anchor)
	if err != nil {
		return nil, err
	}

	start, err := tz.OnDate(ec.Date, anchor.Time, ec.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolve %s event time: %w", anchor.Type, err)
	}

	duration := time.Duration(Duration(g.Members)) * time.Minute

	return &domain.CalendarEvent{
		Summary:         Title(g),
		Description:     Description(g),
		Start:           start,
		End:             start.Add(duration),
		TimeZone:        ec.Timezone,
		Date:            ec.Date,
		ReminderMinutes: ReminderMinutes(g, dayWakeTime),
		Busy:            IsBusy(g),
		AnchorType:      anchor.Type,
	}, nil
}

// Duration is the longest member duration in minutes, never below
// MinDurationMinutes.
func Duration(members []domain.Intervention) int {
	longest := MinDurationMinutes
	for _, m := range members {
		info := infoFor(m.Type)
		d := info.durationMin
		if info.ownDuration && m.DurationMin != nil && *m.DurationMin > 0 {
			d = *m.DurationMin
		}
		if d > longest {
			longest = d
		}
	}
	return longest
}

// Title is the anchor's emoji and label, followed by the other members'
// short labels, e.g. "⏰ Wake up: Light + Melatonin".
func Title(g grouping.Group) string {
	info := infoFor(g.Anchor.Type)
	title := info.emoji + " " + info.label

	others := g.Others()
	if len(others) == 0 {
		return title
	}

	labels := make([]string, 0, len(others))
	for _, m := range others {
		labels = append(labels, infoFor(m.Type).shortLabel)
	}

	return title + ": " + strings.Join(labels, " + ")
}

// Description lists each member's guidance as a bullet and ends with the
// attribution footer.
func Description(g grouping.Group) string {
	var b strings.Builder
	for _, m := range g.Members {
		b.WriteString("• ")
		b.WriteString(simplify(m))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(attributionFooter)
	return b.String()
}

// Light guidance has its own event, so the wake bullet keeps only its first
// sentence.
func simplify(m domain.Intervention) string {
	text := strings.TrimSpace(m.Description)
	if text == "" {
		text = strings.TrimSpace(m.Title)
	}
	if text == "" {
		return infoFor(m.Type).label
	}

	if m.Type == domain.InterventionWakeTarget {
		if idx := strings.Index(text, ". "); idx >= 0 {
			return text[:idx+1]
		}
	}

	return text
}

// ReminderMinutes is the per-anchor-type lead time, or zero when the event
// starts at the day's wake time.
func ReminderMinutes(g grouping.Group, dayWakeTime string) int {
	if dayWakeTime != "" && sameClock(g.Time(), dayWakeTime) {
		return 0
	}
	return infoFor(g.Anchor.Type).reminderMinutes
}

// IsBusy marks naps and exercise as blocking time.
func IsBusy(g grouping.Group) bool {
	switch g.Anchor.Type {
	case domain.InterventionNapWindow, domain.InterventionExercise:
		return true
	default:
		return false
	}
}

func sameClock(a, b string) bool {
	am, err := tz.ClockMinutes(a)
	if err != nil {
		return false
	}
	bm, err := tz.ClockMinutes(b)
	if err != nil {
		return false
	}
	return am == bm
}

// DayWakeTime returns the first wake target's time in items, or "".
func DayWakeTime(items []domain.Intervention) string {
	for _, i := range items {
		if i.Type == domain.InterventionWakeTarget && i.Time != "" {
			return i.Time
		}
	}
	return ""
}
