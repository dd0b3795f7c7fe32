// Package sendtime decides when the flight-day email goes out.
package sendtime

import (
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

const (
	DefaultSendHour = 5
	NightBeforeHour = 19
	MinLeadTime     = 3 * time.Hour
)

type Result struct {
	SendAt        time.Time
	IsNightBefore bool
}

// Calculate returns 05:00 origin-local on the departure date, or 19:00 on the
// previous calendar day when that leaves less than MinLeadTime before the
// first intervention. An empty firstIntervention always keeps the default.
func Calculate(departureLocal, originTZ, firstIntervention string) (Result, error) {
	loc, err := tz.LoadLocation(originTZ)
	if err != nil {
		return Result{}, err
	}

	departure, err := tz.LocalToInstant(departureLocal, originTZ)
	if err != nil {
		return Result{}, err
	}

	year, month, day := departure.In(loc).Date()
	candidate := time.Date(year, month, day, DefaultSendHour, 0, 0, 0, loc)

	if firstIntervention == "" {
		return Result{SendAt: candidate}, nil
	}

	hour, minute, err := tz.ParseClock(firstIntervention)
	if err != nil {
		return Result{}, err
	}

	first := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if first.Sub(candidate) >= MinLeadTime {
		return Result{SendAt: candidate}, nil
	}

	// time.Date normalizes day-1 across month and year ends, and the local
	// date stays correct on 23 and 25 hour days.
	return Result{
		SendAt:        time.Date(year, month, day-1, NightBeforeHour, 0, 0, 0, loc),
		IsNightBefore: true,
	}, nil
}
