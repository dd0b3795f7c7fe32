package domain

import "time"

type SyncStatus string

const (
	SyncStatusSyncing   SyncStatus = "syncing"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// CalendarSync tracks the remote events created for one (trip, user).
type CalendarSync struct {
	ID            string
	TripID        string
	UserID        string
	EventIDs      []string
	Status        SyncStatus
	EventsCreated int
	EventsFailed  int
	ErrorMessage  string
	LastSyncedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveStatus reports a syncing record that has not moved within
// staleAfter as failed.
func (s *CalendarSync) EffectiveStatus(now time.Time, staleAfter time.Duration) SyncStatus {
	if s.Status == SyncStatusSyncing && now.Sub(s.UpdatedAt) > staleAfter {
		return SyncStatusFailed
	}

	return s.Status
}

// CalendarEvent is a synthesized event ready to be written to a remote calendar.
type CalendarEvent struct {
	Summary         string
	Description     string
	Start           time.Time
	End             time.Time
	TimeZone        string
	Date            string
	ReminderMinutes int
	Busy            bool
	AnchorType      InterventionType
}

// RemoteEvent is an event as read back from a remote calendar.
type RemoteEvent struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}
