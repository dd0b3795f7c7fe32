package taskqueue

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue schedules a dispatch sweep to fire at a given time.
type TaskQueue interface {
	RegisterDispatch(ctx context.Context, task *DispatchTask) (*TaskResponse, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// TaskID names the task for one schedule at one send time, so a reschedule
// never collides with the task it replaces.
func TaskID(scheduleID string, sendAt time.Time) string {
	return fmt.Sprintf("flight-day-%s-%d", scheduleID, sendAt.Unix())
}
