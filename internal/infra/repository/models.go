package repository

import (
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type userModel struct {
	ID                 string `gorm:"primaryKey"`
	Email              string
	Name               string
	EmailNotifications bool `gorm:"not null;default:false"`
	GoogleRefreshToken string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:                 m.ID,
		Email:              m.Email,
		Name:               m.Name,
		EmailNotifications: m.EmailNotifications,
		GoogleRefreshToken: m.GoogleRefreshToken,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

type tripModel struct {
	ID                string             `gorm:"primaryKey"`
	UserID            string             `gorm:"not null;index"`
	OriginTZ          string             `gorm:"column:origin_tz;not null"`
	DestTZ            string             `gorm:"column:dest_tz;not null"`
	DepartureDateTime string             `gorm:"column:departure_datetime;not null"`
	ArrivalDateTime   string             `gorm:"column:arrival_datetime;not null"`
	Preferences       domain.Preferences `gorm:"type:jsonb;serializer:json;not null"`
	Schedule          *domain.Schedule   `gorm:"type:jsonb;serializer:json"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (tripModel) TableName() string { return "trips" }

func newTripModel(t *domain.Trip) *tripModel {
	return &tripModel{
		ID:                t.ID,
		UserID:            t.UserID,
		OriginTZ:          t.OriginTZ,
		DestTZ:            t.DestTZ,
		DepartureDateTime: t.DepartureDateTime,
		ArrivalDateTime:   t.ArrivalDateTime,
		Preferences:       t.Preferences,
		Schedule:          t.Schedule,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func (m *tripModel) toDomain() *domain.Trip {
	return &domain.Trip{
		ID:                m.ID,
		UserID:            m.UserID,
		OriginTZ:          m.OriginTZ,
		DestTZ:            m.DestTZ,
		DepartureDateTime: m.DepartureDateTime,
		ArrivalDateTime:   m.ArrivalDateTime,
		Preferences:       m.Preferences,
		Schedule:          m.Schedule,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// emailScheduleModel is unique per (trip, user, email type).
type emailScheduleModel struct {
	ID            string    `gorm:"primaryKey"`
	TripID        string    `gorm:"not null;uniqueIndex:idx_email_schedules_target,priority:1"`
	UserID        string    `gorm:"not null;uniqueIndex:idx_email_schedules_target,priority:2"`
	EmailType     string    `gorm:"not null;uniqueIndex:idx_email_schedules_target,priority:3"`
	ScheduledFor  time.Time `gorm:"not null;index"`
	IsNightBefore bool      `gorm:"not null;default:false"`
	SentAt        *time.Time
	FailedAt      *time.Time
	SkippedAt     *time.Time
	ErrorMessage  string
	SkipReason    string
	MessageID     string
	Attempts      int `gorm:"not null;default:0"`
	ClaimToken    string
	ClaimedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (emailScheduleModel) TableName() string { return "email_schedules" }

func newEmailScheduleModel(e *domain.EmailSchedule) *emailScheduleModel {
	return &emailScheduleModel{
		ID:            e.ID,
		TripID:        e.TripID,
		UserID:        e.UserID,
		EmailType:     string(e.EmailType),
		ScheduledFor:  e.ScheduledFor,
		IsNightBefore: e.IsNightBefore,
		SentAt:        e.SentAt,
		FailedAt:      e.FailedAt,
		SkippedAt:     e.SkippedAt,
		ErrorMessage:  e.ErrorMessage,
		SkipReason:    e.SkipReason,
		MessageID:     e.MessageID,
		Attempts:      e.Attempts,
		ClaimToken:    e.ClaimToken,
		ClaimedAt:     e.ClaimedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (m *emailScheduleModel) toDomain() *domain.EmailSchedule {
	return &domain.EmailSchedule{
		ID:            m.ID,
		TripID:        m.TripID,
		UserID:        m.UserID,
		EmailType:     domain.EmailType(m.EmailType),
		ScheduledFor:  m.ScheduledFor,
		IsNightBefore: m.IsNightBefore,
		SentAt:        m.SentAt,
		FailedAt:      m.FailedAt,
		SkippedAt:     m.SkippedAt,
		ErrorMessage:  m.ErrorMessage,
		SkipReason:    m.SkipReason,
		MessageID:     m.MessageID,
		Attempts:      m.Attempts,
		ClaimToken:    m.ClaimToken,
		ClaimedAt:     m.ClaimedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type calendarSyncModel struct {
	ID            string   `gorm:"primaryKey"`
	TripID        string   `gorm:"not null;uniqueIndex:idx_calendar_syncs_target,priority:1"`
	UserID        string   `gorm:"not null;uniqueIndex:idx_calendar_syncs_target,priority:2"`
	EventIDs      []string `gorm:"type:jsonb;serializer:json"`
	Status        string   `gorm:"not null"`
	EventsCreated int      `gorm:"not null;default:0"`
	EventsFailed  int      `gorm:"not null;default:0"`
	ErrorMessage  string
	LastSyncedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (calendarSyncModel) TableName() string { return "calendar_syncs" }

func newCalendarSyncModel(s *domain.CalendarSync) *calendarSyncModel {
	return &calendarSyncModel{
		ID:            s.ID,
		TripID:        s.TripID,
		UserID:        s.UserID,
		EventIDs:      s.EventIDs,
		Status:        string(s.Status),
		EventsCreated: s.EventsCreated,
		EventsFailed:  s.EventsFailed,
		ErrorMessage:  s.ErrorMessage,
		LastSyncedAt:  s.LastSyncedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *calendarSyncModel) toDomain() *domain.CalendarSync {
	return &domain.CalendarSync{
		ID:            m.ID,
		TripID:        m.TripID,
		UserID:        m.UserID,
		EventIDs:      m.EventIDs,
		Status:        domain.SyncStatus(m.Status),
		EventsCreated: m.EventsCreated,
		EventsFailed:  m.EventsFailed,
		ErrorMessage:  m.ErrorMessage,
		LastSyncedAt:  m.LastSyncedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
