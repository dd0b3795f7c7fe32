package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) domain.TripRepository {
	return &tripRepository{
		db: db,
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if err := r.db.WithContext(ctx).Create(newTripModel(trip)).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrTripAlreadyExists, trip.ID)
		}
		return fmt.Errorf("create trip: %w", err)
	}

	return nil
}

func (r *tripRepository) Get(ctx context.Context, id string) (*domain.Trip, error) {
	var m tripModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("get trip: %w", err)
	}

	return m.toDomain(), nil
}

// Update replaces every mutable column of an existing trip.
func (r *tripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	result := r.db.WithContext(ctx).
		Model(&tripModel{}).
		Where("id = ?", trip.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(newTripModel(trip))
	if result.Error != nil {
		return fmt.Errorf("update trip: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTripNotFound
	}

	return nil
}
