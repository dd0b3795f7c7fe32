package domain

import "errors"

var (
	ErrTripNotFound          = errors.New("trip not found")
	ErrTripAlreadyExists     = errors.New("trip already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailScheduleNotFound = errors.New("email schedule not found")
	ErrCalendarSyncNotFound  = errors.New("calendar sync not found")

	ErrInvalidTrip = errors.New("invalid trip")

	ErrMissingTimezoneContext = errors.New("intervention has no timezone context")
	ErrMissingDateContext     = errors.New("intervention has no date context")
	ErrInvalidSchedule        = errors.New("invalid schedule")

	ErrScheduleGenerationFailed = errors.New("schedule generation failed")
	ErrScheduleNotGenerated     = errors.New("trip has no generated schedule")

	ErrClaimLost = errors.New("email schedule claim lost")

	ErrRemoteEventNotFound    = errors.New("remote calendar event not found")
	ErrCalendarRateLimited    = errors.New("calendar rate limited")
	ErrCalendarUnavailable    = errors.New("calendar temporarily unavailable")
	ErrCalendarAuthRevoked    = errors.New("calendar authorization revoked")
	ErrCalendarNotConnected   = errors.New("calendar not connected")
	ErrCalendarDeleteFailed   = errors.New("failed to delete previously synced events")
	ErrCalendarSyncInProgress = errors.New("calendar sync already in progress")
)

// IsTransient reports whether a remote calendar error is worth retrying later.
// Revoked credentials are permanent and need the user to reconnect.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrCalendarAuthRevoked) {
		return false
	}

	return errors.Is(err, ErrCalendarRateLimited) || errors.Is(err, ErrCalendarUnavailable)
}
