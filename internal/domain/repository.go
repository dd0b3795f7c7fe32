package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

type TripRepository interface {
	Create(ctx context.Context, trip *Trip) error
	Get(ctx context.Context, id string) (*Trip, error)
	Update(ctx context.Context, trip *Trip) error
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*User, error)
}

// EmailScheduleRepository persists flight-day email intents. Claim is the
// only way a sweep may take ownership of a record; the Mark* calls succeed
// only for the holder of the claim token.
type EmailScheduleRepository interface {
	Upsert(ctx context.Context, schedule *EmailSchedule) error
	Get(ctx context.Context, tripID, userID string, emailType EmailType) (*EmailSchedule, error)
	Delete(ctx context.Context, tripID, userID string, emailType EmailType) error
	ListDue(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*EmailSchedule, error)
	Claim(ctx context.Context, id, token string, now time.Time, claimTTL time.Duration) (bool, error)
	MarkSent(ctx context.Context, id, token string, at time.Time, messageID string) error
	MarkFailed(ctx context.Context, id, token string, at time.Time, message string) error
	MarkSkipped(ctx context.Context, id, token string, at time.Time, reason string) error
}

type CalendarSyncRepository interface {
	Get(ctx context.Context, tripID, userID string) (*CalendarSync, error)
	Save(ctx context.Context, sync *CalendarSync) error
	Delete(ctx context.Context, tripID, userID string) error
}
