// Package grouping clusters a day's interventions into calendar-event groups
// around the wake and sleep anchors.
package grouping

import (
	"sort"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

// MaxAnchorDistanceMinutes is how far an item may sit from an anchor and
// still join its group.
const MaxAnchorDistanceMinutes = 120

// Group is a non-empty set of interventions shown as one event. Members[0] is
// the anchor, and the group takes the anchor's time.
type Group struct {
	Anchor  domain.Intervention
	Members []domain.Intervention
}

// Time is the display time shared by all members.
func (g Group) Time() string {
	return g.Anchor.Time
}

// Others returns the members grouped under the anchor.
func (g Group) Others() []domain.Intervention {
	if len(g.Members) <= 1 {
		return nil
	}
	return g.Members[1:]
}

func newGroup(i domain.Intervention) *Group {
	return &Group{Anchor: i, Members: []domain.Intervention{i}}
}

type entry struct {
	group  *Group
	minute int
}

// GroupDay groups one day's interventions. caffeine_ok items are dropped and
// standalone types are never merged. Every other item joins the nearer of the
// first wake and first sleep anchors when within MaxAnchorDistanceMinutes.
// Equidistant items go to wake. Groups are ordered by anchor time.
func GroupDay(items []domain.Intervention) []Group {
	var (
		entries   []entry
		remaining []domain.Intervention
		hasWake   bool
		hasSleep  bool
	)

	for _, item := range items {
		if !item.Type.IsActionable() {
			continue
		}

		minute, err := tz.ClockMinutes(item.Time)
		if err != nil {
			// Unresolved timing cannot be placed; the synthesizer reports it.
			entries = append(entries, entry{group: newGroup(item), minute: -1})
			continue
		}

		switch {
		case item.Type == domain.InterventionWakeTarget && !hasWake:
			entries = append(entries, entry{group: newGroup(item), minute: minute})
			hasWake = true
		case item.Type == domain.InterventionSleepTarget && !hasSleep:
			entries = append(entries, entry{group: newGroup(item), minute: minute})
			hasSleep = true
		case item.Type.IsStandalone():
			entries = append(entries, entry{group: newGroup(item), minute: minute})
		default:
			remaining = append(remaining, item)
		}
	}

	var wakeGroup, sleepGroup *Group
	wakeMinute, sleepMinute := 0, 0
	if hasWake {
		wakeGroup, wakeMinute = findGroup(entries, domain.InterventionWakeTarget)
	}
	if hasSleep {
		sleepGroup, sleepMinute = findGroup(entries, domain.InterventionSleepTarget)
	}

	for _, item := range remaining {
		minute, _ := tz.ClockMinutes(item.Time)

		wakeDistance, sleepDistance := -1, -1
		if wakeGroup != nil {
			wakeDistance = abs(minute - wakeMinute)
		}
		if sleepGroup != nil {
			sleepDistance = abs(minute - sleepMinute)
		}

		switch {
		case wakeDistance >= 0 && wakeDistance <= MaxAnchorDistanceMinutes &&
			(sleepDistance < 0 || wakeDistance <= sleepDistance):
			wakeGroup.Members = append(wakeGroup.Members, item)
		case sleepDistance >= 0 && sleepDistance <= MaxAnchorDistanceMinutes:
			sleepGroup.Members = append(sleepGroup.Members, item)
		default:
			entries = append(entries, entry{group: newGroup(item), minute: minute})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].minute < entries[j].minute
	})

	groups := make([]Group, 0, len(entries))
	for _, e := range entries {
		groups = append(groups, *e.group)
	}

	return groups
}

func findGroup(entries []entry, anchorType domain.InterventionType) (*Group, int) {
	for _, e := range entries {
		if e.group.Anchor.Type == anchorType && e.minute >= 0 {
			return e.group, e.minute
		}
	}
	return nil, 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
