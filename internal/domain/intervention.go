package domain

import "fmt"

type InterventionType string

const (
	InterventionWakeTarget     InterventionType = "wake_target"
	InterventionSleepTarget    InterventionType = "sleep_target"
	InterventionMelatonin      InterventionType = "melatonin"
	InterventionLightSeek      InterventionType = "light_seek"
	InterventionLightAvoid     InterventionType = "light_avoid"
	InterventionCaffeineOK     InterventionType = "caffeine_ok"
	InterventionCaffeineCutoff InterventionType = "caffeine_cutoff"
	InterventionExercise       InterventionType = "exercise"
	InterventionNapWindow      InterventionType = "nap_window"
)

func (t InterventionType) String() string {
	return string(t)
}

// IsAnchor reports whether the type seeds an anchor group.
func (t InterventionType) IsAnchor() bool {
	return t == InterventionWakeTarget || t == InterventionSleepTarget
}

// IsStandalone reports whether the type always becomes its own calendar event.
func (t InterventionType) IsStandalone() bool {
	switch t {
	case InterventionCaffeineCutoff, InterventionExercise, InterventionNapWindow, InterventionLightAvoid:
		return true
	default:
		return false
	}
}

// IsActionable is false for guidance that carries no event.
func (t InterventionType) IsActionable() bool {
	return t != InterventionCaffeineOK
}

type Phase string

const (
	PhasePreparation  Phase = "preparation"
	PhasePreDeparture Phase = "pre_departure"
	PhaseInTransit    Phase = "in_transit"
	PhasePostArrival  Phase = "post_arrival"
	PhaseAdaptation   Phase = "adaptation"
)

// UsesOrigin reports whether interventions in the phase are anchored to the
// origin timezone and date.
func (p Phase) UsesOrigin() bool {
	return p == PhasePreparation || p == PhasePreDeparture
}

// Intervention is one timed piece of guidance produced by the circadian model.
// Time is authoritative unless the item is in transit and only carries
// FlightOffsetHours.
type Intervention struct {
	Type              InterventionType `json:"type" validate:"required,oneof=wake_target sleep_target melatonin light_seek light_avoid caffeine_ok caffeine_cutoff exercise nap_window"`
	Time              string           `json:"time,omitempty" validate:"omitempty,clock"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	DurationMin       *int             `json:"duration_min,omitempty" validate:"omitempty,gte=0,lte=1440"`
	Phase             Phase            `json:"phase_type,omitempty" validate:"omitempty,oneof=preparation pre_departure in_transit post_arrival adaptation"`
	OriginTZ          string           `json:"origin_tz,omitempty"`
	DestTZ            string           `json:"dest_tz,omitempty"`
	OriginDate        string           `json:"origin_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DestDate          string           `json:"dest_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FlightOffsetHours *float64         `json:"flight_offset_hours,omitempty" validate:"omitempty,gte=0"`
}

// HasFlightOffsetOnly reports whether timing must be derived from departure.
func (i Intervention) HasFlightOffsetOnly() bool {
	return i.Time == "" && i.FlightOffsetHours != nil
}

type DaySchedule struct {
	Day   int            `json:"day"`
	Date  string         `json:"date" validate:"required,datetime=2006-01-02"`
	Items []Intervention `json:"items" validate:"dive"`
}

// Schedule is the output of the circadian model for one trip.
type Schedule struct {
	Interventions  []DaySchedule `json:"interventions" validate:"dive"`
	IsMinimalShift bool          `json:"is_minimal_shift"`
	ShiftMagnitude float64       `json:"shift_magnitude"`
	Direction      string        `json:"direction" validate:"omitempty,oneof=advance delay"`
}

// Day returns the schedule day for a calendar date.
func (s *Schedule) Day(date string) (*DaySchedule, bool) {
	if s == nil {
		return nil, false
	}

	for i := range s.Interventions {
		if s.Interventions[i].Date == date {
			return &s.Interventions[i], true
		}
	}

	return nil, false
}

// Context is the timezone and calendar date an intervention is displayed in.
type Context struct {
	Timezone string
	Date     string
}

// EffectiveContext picks origin context for preparation and pre-departure
// items and destination context for everything else. Every consumer that
// needs an intervention's zone or date goes through here.
func EffectiveContext(i Intervention) (Context, error) {
	c := Context{Timezone: i.DestTZ, Date: i.DestDate}
	if i.Phase.UsesOrigin() {
		c = Context{Timezone: i.OriginTZ, Date: i.OriginDate}
	}

	if c.Timezone == "" {
		return Context{}, fmt.Errorf("%w: %s at %s (phase %q)", ErrMissingTimezoneContext, i.Type, i.Time, i.Phase)
	}
	if c.Date == "" {
		return Context{}, fmt.Errorf("%w: %s at %s (phase %q)", ErrMissingDateContext, i.Type, i.Time, i.Phase)
	}

	return c, nil
}
