// Package tz converts between local wall-clock strings in named IANA zones and
// absolute instants.
package tz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Bundled so zone lookups behave the same in minimal containers.
	_ "time/tzdata"
)

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidDateTime = errors.New("invalid date time")
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	wallClockLayout        = "2006-01-02T15:04:05"
	wallClockMinutesLayout = "2006-01-02T15:04"
)

// LoadLocation resolves an IANA zone name. Empty and "Local" are rejected so
// results never depend on the host's zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}

	return loc, nil
}

// OffsetMinutes returns the UTC offset of the zone at the given instant.
func OffsetMinutes(timezone string, at time.Time) (int, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return 0, err
	}

	_, offsetSeconds := at.In(loc).Zone()

	return offsetSeconds / 60, nil
}

// LocalToInstant interprets "YYYY-MM-DDTHH:MM[:SS]" as wall-clock time in timezone.
func LocalToInstant(local, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}

	return parseWallClock(local, loc)
}

// ShiftHours is (destOffset - originOffset) / 60 at the given instant.
// Positive means the destination is ahead of the origin.
func ShiftHours(originTZ, destTZ string, at time.Time) (float64, error) {
	origin, err := OffsetMinutes(originTZ, at)
	if err != nil {
		return 0, err
	}

	dest, err := OffsetMinutes(destTZ, at)
	if err != nil {
		return 0, err
	}

	return float64(dest-origin) / 60, nil
}

// LocalDate returns the calendar date of the instant in timezone.
func LocalDate(at time.Time, timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", err
	}

	return at.In(loc).Format(DateLayout), nil
}

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(clock string) (int, int, error) {
	hourPart, minutePart, ok := strings.Cut(clock, ":")
	if !ok || len(hourPart) == 0 || len(hourPart) > 2 || len(minutePart) != 2 {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrInvalidDateTime, clock)
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrInvalidDateTime, clock)
	}

	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrInvalidDateTime, clock)
	}

	return hour, minute, nil
}

// ClockMinutes returns minutes since local midnight for "HH:MM".
func ClockMinutes(clock string) (int, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}

	return hour*60 + minute, nil
}

// OnDate resolves a local date and clock time in timezone to an instant.
func OnDate(date, clock, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}

	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidDateTime, date)
	}

	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

func parseWallClock(local string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{wallClockLayout, wallClockMinutesLayout} {
		if t, err := time.ParseInLocation(layout, local, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, local)
}
