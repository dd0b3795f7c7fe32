package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=calendar.go -destination=calendar_mock.go -package=domain

// RemoteCalendar is one user's external calendar. Delete returns an error
// wrapping ErrRemoteEventNotFound when the event is already gone.
type RemoteCalendar interface {
	Insert(ctx context.Context, event *CalendarEvent) (string, error)
	Patch(ctx context.Context, id string, event *CalendarEvent) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, timeMin, timeMax time.Time) ([]RemoteEvent, error)
}

type CalendarProvider interface {
	ForUser(ctx context.Context, user *User) (RemoteCalendar, error)
}
