package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/service/eventsynth"
	"github.com/KasumiMercury/primind-jetlag/internal/service/grouping"
	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

// WakeDedupWindowMinutes is how close two wake events on the same calendar
// date may be before the later one is suppressed.
const WakeDedupWindowMinutes = 120

// Plan is the set of events a schedule should produce. Failed counts groups
// that could not be turned into events.
type Plan struct {
	Events []*domain.CalendarEvent
	Failed int
}

// BuildPlan groups and synthesizes every day of the trip's schedule. When
// two days put wake events on the same effective date within
// WakeDedupWindowMinutes, only the first is kept and the later one's other
// members become standalone events.
func BuildPlan(ctx context.Context, trip *domain.Trip) (*Plan, error) {
	if trip.Schedule == nil {
		return nil, domain.ErrScheduleNotGenerated
	}

	departure, err := trip.DepartureInstant()
	if err != nil {
		return nil, err
	}

	plan := &Plan{}
	wakesByDate := make(map[string][]int)

	for _, day := range trip.Schedule.Interventions {
		items := resolveFlightOffsets(ctx, day.Items, departure, trip.DestTZ)
		dayWake := eventsynth.DayWakeTime(items)

		for _, g := range grouping.GroupDay(items) {
			if g.Anchor.Type == domain.InterventionWakeTarget && isDuplicateWake(g, wakesByDate) {
				slog.DebugContext(ctx, "suppressing duplicate wake event",
					slog.String("trip_id", trip.ID),
					slog.String("time", g.Time()),
					slog.Int("regrouped", len(g.Others())),
				)
				for _, m := range g.Others() {
					plan.add(ctx, grouping.Group{Anchor: m, Members: []domain.Intervention{m}}, dayWake)
				}
				continue
			}

			plan.add(ctx, g, dayWake)
		}
	}

	return plan, nil
}

func (p *Plan) add(ctx context.Context, g grouping.Group, dayWake string) {
	ev, err := eventsynth.Synthesize(g, dayWake)
	if err != nil {
		slog.ErrorContext(ctx, "failed to synthesize calendar event",
			slog.String("type", g.Anchor.Type.String()),
			slog.String("time", g.Time()),
			slog.String("phase", string(g.Anchor.Phase)),
			slog.String("error", err.Error()),
		)
		p.Failed++
		return
	}

	p.Events = append(p.Events, ev)
}

// isDuplicateWake records the wake in seen unless an earlier wake on the same
// effective date is within the dedup window.
func isDuplicateWake(g grouping.Group, seen map[string][]int) bool {
	ec, err := domain.EffectiveContext(g.Anchor)
	if err != nil {
		return false
	}

	minute, err := tz.ClockMinutes(g.Time())
	if err != nil {
		return false
	}

	for _, prev := range seen[ec.Date] {
		d := minute - prev
		if d < 0 {
			d = -d
		}
		if d <= WakeDedupWindowMinutes {
			return true
		}
	}

	seen[ec.Date] = append(seen[ec.Date], minute)
	return false
}

// resolveFlightOffsets gives in-transit items that only carry an offset from
// departure a destination wall-clock time and date.
func resolveFlightOffsets(ctx context.Context, items []domain.Intervention, departure time.Time, tripDestTZ string) []domain.Intervention {
	out := make([]domain.Intervention, 0, len(items))
	for _, item := range items {
		if !item.HasFlightOffsetOnly() {
			out = append(out, item)
			continue
		}

		destTZ := item.DestTZ
		if destTZ == "" {
			destTZ = tripDestTZ
		}

		loc, err := tz.LoadLocation(destTZ)
		if err != nil {
			slog.WarnContext(ctx, "cannot resolve in-transit intervention time",
				slog.String("type", item.Type.String()),
				slog.String("error", err.Error()),
			)
			out = append(out, item)
			continue
		}

		offset := time.Duration(*item.FlightOffsetHours * float64(time.Hour))
		at := departure.Add(offset).In(loc)

		item.Time = at.Format(tz.ClockLayout)
		item.DestTZ = destTZ
		item.DestDate = at.Format(tz.DateLayout)
		if item.Phase == "" {
			item.Phase = domain.PhaseInTransit
		}

		out = append(out, item)
	}

	return out
}
