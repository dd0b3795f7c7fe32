package config

import (
	"os"
	"time"
)

const (
	googleClientIDEnv     = "GOOGLE_CLIENT_ID"
	googleClientSecretEnv = "GOOGLE_CLIENT_SECRET"
	googleCalendarIDEnv   = "GOOGLE_CALENDAR_ID"
	googleAPIEndpointEnv  = "GOOGLE_CALENDAR_ENDPOINT"
	calendarRateEnv       = "CALENDAR_REQUESTS_PER_SECOND"
	calendarBurstEnv      = "CALENDAR_BURST"
	calendarCallTOEnv     = "CALENDAR_CALL_TIMEOUT"
	calendarLockTTLEnv    = "CALENDAR_SYNC_LOCK_TTL"
	calendarStaleEnv      = "CALENDAR_SYNC_STALE_AFTER"

	defaultCalendarID      = "primary"
	defaultCalendarRate    = 5.0
	defaultCalendarBurst   = 1
	defaultCalendarCallTO  = 10 * time.Second
	defaultCalendarLockTTL = 5 * time.Minute
	defaultCalendarStale   = 10 * time.Minute
)

type CalendarConfig struct {
	ClientID     string
	ClientSecret string
	CalendarID   string
	// Endpoint overrides the Calendar API base URL.
	Endpoint string

	RequestsPerSecond float64
	Burst             int
	CallTimeout       time.Duration
	LockTTL           time.Duration
	StaleAfter        time.Duration
}

func LoadCalendarConfig() *CalendarConfig {
	calendarID := os.Getenv(googleCalendarIDEnv)
	if calendarID == "" {
		calendarID = defaultCalendarID
	}

	return &CalendarConfig{
		ClientID:          os.Getenv(googleClientIDEnv),
		ClientSecret:      os.Getenv(googleClientSecretEnv),
		CalendarID:        calendarID,
		Endpoint:          os.Getenv(googleAPIEndpointEnv),
		RequestsPerSecond: floatEnv(calendarRateEnv, defaultCalendarRate),
		Burst:             intEnv(calendarBurstEnv, defaultCalendarBurst),
		CallTimeout:       durationEnv(calendarCallTOEnv, defaultCalendarCallTO),
		LockTTL:           durationEnv(calendarLockTTLEnv, defaultCalendarLockTTL),
		StaleAfter:        durationEnv(calendarStaleEnv, defaultCalendarStale),
	}
}

func (c *CalendarConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func (c *CalendarConfig) Validate() error {
	if (c.ClientID == "") != (c.ClientSecret == "") {
		return ErrCalendarOAuth
	}
	return nil
}
