package taskqueue

import "time"

// DispatchTask asks the queue to call the dispatch endpoint at ScheduleAt.
// Only the JSON fields travel in the request body.
type DispatchTask struct {
	TaskID     string    `json:"-"`
	ScheduleAt time.Time `json:"-"`

	ScheduleID string `json:"schedule_id"`
	TripID     string `json:"trip_id"`
	UserID     string `json:"user_id"`
	EmailType  string `json:"email_type"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}
