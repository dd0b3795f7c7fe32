package dispatch

import "time"

const (
	SkipReasonClaimed         = "already sent or claimed"
	SkipReasonTripNotFound    = "trip not found"
	SkipReasonUserNotFound    = "user not found"
	SkipReasonNotDeliverable  = "no deliverable address or notifications disabled"
	SkipReasonNoSchedule      = "trip has no generated schedule"
	SkipReasonNoInterventions = "no interventions on departure date"
)

type ResultItem struct {
	ScheduleID    string    `json:"schedule_id"`
	TripID        string    `json:"trip_id"`
	UserID        string    `json:"user_id"`
	ScheduledFor  time.Time `json:"scheduled_for"`
	IsNightBefore bool      `json:"is_night_before"`
	MessageID     string    `json:"message_id,omitempty"`
	Sent          bool      `json:"sent"`
	Skipped       bool      `json:"skipped"`
	SkipReason    string    `json:"skip_reason,omitempty"`
	Error         string    `json:"error,omitempty"`
}

type Response struct {
	RunID          string       `json:"run_id"`
	ProcessedCount int          `json:"processed_count"`
	SentCount      int          `json:"sent_count"`
	FailedCount    int          `json:"failed_count"`
	SkippedCount   int          `json:"skipped_count"`
	Results        []ResultItem `json:"results"`
}
