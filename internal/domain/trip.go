package domain

import (
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

type NapPreference string

const (
	NapPreferenceNo         NapPreference = "no"
	NapPreferenceFlightOnly NapPreference = "flight_only"
	NapPreferenceAllDays    NapPreference = "all_days"
)

type Intensity string

const (
	IntensityGentle     Intensity = "gentle"
	IntensityBalanced   Intensity = "balanced"
	IntensityAggressive Intensity = "aggressive"
)

type Preferences struct {
	WakeTime      string        `json:"wake_time" validate:"required,clock"`
	SleepTime     string        `json:"sleep_time" validate:"required,clock"`
	UsesMelatonin bool          `json:"uses_melatonin"`
	UsesCaffeine  bool          `json:"uses_caffeine"`
	UsesExercise  bool          `json:"uses_exercise"`
	NapPreference NapPreference `json:"nap_preference" validate:"omitempty,oneof=no flight_only all_days"`
	Intensity     Intensity     `json:"intensity" validate:"omitempty,oneof=gentle balanced aggressive"`
	PrepDays      int           `json:"prep_days" validate:"gte=0,lte=7"`
}

// Trip is one journey. Departure and arrival are wall-clock strings local to
// their own endpoint's timezone and are never compared without conversion.
type Trip struct {
	ID                string      `json:"id"`
	UserID            string      `json:"user_id"`
	OriginTZ          string      `json:"origin_tz"`
	DestTZ            string      `json:"dest_tz"`
	DepartureDateTime string      `json:"departure_datetime"`
	ArrivalDateTime   string      `json:"arrival_datetime"`
	Preferences       Preferences `json:"preferences"`
	Schedule          *Schedule   `json:"schedule,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// DepartureInstant resolves the departure wall clock in the origin zone.
func (t *Trip) DepartureInstant() (time.Time, error) {
	return tz.LocalToInstant(t.DepartureDateTime, t.OriginTZ)
}

// ArrivalInstant resolves the arrival wall clock in the destination zone.
func (t *Trip) ArrivalInstant() (time.Time, error) {
	return tz.LocalToInstant(t.ArrivalDateTime, t.DestTZ)
}

// DepartureDate is the origin-local calendar date of departure.
func (t *Trip) DepartureDate() (string, error) {
	dep, err := t.DepartureInstant()
	if err != nil {
		return "", err
	}

	return tz.LocalDate(dep, t.OriginTZ)
}

type User struct {
	ID                 string
	Email              string
	Name               string
	EmailNotifications bool
	// GoogleRefreshToken is empty when no calendar is connected.
	GoogleRefreshToken string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanReceiveEmail reports whether a flight-day email may be delivered.
func (u *User) CanReceiveEmail() bool {
	return u != nil && u.Email != "" && u.EmailNotifications
}
