package stub

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

const inFlightOffsetHours = 2.0

// Synthesize builds a small but complete schedule for req: a departure day
// wake target, one in-flight item and two adaptation days at the
// destination.
func Synthesize(req domain.ScheduleRequest) (*domain.Schedule, error) {
	departure, err := tz.LocalToInstant(req.DepartureDateTime, req.OriginTZ)
	if err != nil {
		return nil, fmt.Errorf("departure: %w", err)
	}
	arrival, err := tz.LocalToInstant(req.ArrivalDateTime, req.DestTZ)
	if err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}

	departureDate, err := tz.LocalDate(departure, req.OriginTZ)
	if err != nil {
		return nil, err
	}
	arrivalDate, err := tz.LocalDate(arrival, req.DestTZ)
	if err != nil {
		return nil, err
	}
	nextDate, err := tz.LocalDate(arrival.Add(24*time.Hour), req.DestTZ)
	if err != nil {
		return nil, err
	}

	wake := req.Preferences.WakeTime
	sleep := req.Preferences.SleepTime
	offset := inFlightOffsetHours

	departureDay := []domain.Intervention{{
		Type:        domain.InterventionWakeTarget,
		Time:        wake,
		Title:       "Wake up",
		Description: "Keep your usual wake time on departure day.",
		Phase:       domain.PhasePreDeparture,
		OriginTZ:    req.OriginTZ,
		OriginDate:  departureDate,
	}, {
		Type:              domain.InterventionLightAvoid,
		Title:             "Avoid bright light",
		Description:       "Dim screens and wear an eye mask.",
		Phase:             domain.PhaseInTransit,
		FlightOffsetHours: &offset,
	}}

	adaptationDay := func(date string, phase domain.Phase) []domain.Intervention {
		return []domain.Intervention{{
			Type:        domain.InterventionWakeTarget,
			Time:        wake,
			Title:       "Wake up",
			Description: "Get up at your target time in the new zone.",
			Phase:       phase,
			DestTZ:      req.DestTZ,
			DestDate:    date,
		}, {
			Type:        domain.InterventionLightSeek,
			Time:        wake,
			Title:       "Seek bright light",
			Description: "Get outside in the morning light.",
			Phase:       phase,
			DestTZ:      req.DestTZ,
			DestDate:    date,
		}, {
			Type:        domain.InterventionSleepTarget,
			Time:        sleep,
			Title:       "Go to bed",
			Description: "Aim for lights out at your target bedtime.",
			Phase:       phase,
			DestTZ:      req.DestTZ,
			DestDate:    date,
		}}
	}

	return &domain.Schedule{
		Direction: "stub",
		Interventions: []domain.DaySchedule{
			{Day: 0, Date: departureDate, Items: departureDay},
			{Day: 1, Date: arrivalDate, Items: adaptationDay(arrivalDate, domain.PhasePostArrival)},
			{Day: 2, Date: nextDate, Items: adaptationDay(nextDate, domain.PhaseAdaptation)},
		},
	}, nil
}
