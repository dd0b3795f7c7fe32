package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type calendarSyncRepository struct {
	db *gorm.DB
}

func NewCalendarSyncRepository(db *gorm.DB) domain.CalendarSyncRepository {
	return &calendarSyncRepository{
		db: db,
	}
}

func (r *calendarSyncRepository) Get(ctx context.Context, tripID, userID string) (*domain.CalendarSync, error) {
	var m calendarSyncModel
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCalendarSyncNotFound
		}
		return nil, fmt.Errorf("get calendar sync: %w", err)
	}

	return m.toDomain(), nil
}

// Save inserts the record or overwrites the existing one for the same
// (trip, user), keeping that row's id.
func (r *calendarSyncRepository) Save(ctx context.Context, sync *domain.CalendarSync) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "trip_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"event_ids", "status", "events_created", "events_failed",
				"error_message", "last_synced_at", "updated_at",
			}),
		}).
		Create(newCalendarSyncModel(sync)).Error
	if err != nil {
		return fmt.Errorf("save calendar sync: %w", err)
	}

	return nil
}

func (r *calendarSyncRepository) Delete(ctx context.Context, tripID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&calendarSyncModel{}).Error
	if err != nil {
		return fmt.Errorf("delete calendar sync: %w", err)
	}

	return nil
}
