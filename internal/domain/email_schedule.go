package domain

import "time"

type EmailType string

const (
	EmailTypeFlightDay EmailType = "flight_day"
)

// EmailSchedule is the durable intent to send one email for a (trip, user, type).
// SentAt and FailedAt are never both set. SkippedAt marks a planning gap and,
// like SentAt, is terminal until the schedule is reset.
type EmailSchedule struct {
	ID            string
	TripID        string
	UserID        string
	EmailType     EmailType
	ScheduledFor  time.Time
	IsNightBefore bool
	SentAt        *time.Time
	FailedAt      *time.Time
	SkippedAt     *time.Time
	ErrorMessage  string
	SkipReason    string
	MessageID     string
	Attempts      int
	ClaimToken    string
	ClaimedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTerminal reports whether the dispatch loop must leave the record alone.
func (e *EmailSchedule) IsTerminal() bool {
	return e.SentAt != nil || e.SkippedAt != nil
}
