package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

type emailScheduleRepository struct {
	db *gorm.DB
}

func NewEmailScheduleRepository(db *gorm.DB) domain.EmailScheduleRepository {
	return &emailScheduleRepository{
		db: db,
	}
}

// Upsert writes the record, replacing the state of an existing record for
// the same (trip, user, email type). The existing row keeps its id.
func (r *emailScheduleRepository) Upsert(ctx context.Context, schedule *domain.EmailSchedule) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "trip_id"}, {Name: "user_id"}, {Name: "email_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"scheduled_for", "is_night_before", "sent_at", "failed_at", "skipped_at",
				"error_message", "skip_reason", "message_id", "attempts",
				"claim_token", "claimed_at", "updated_at",
			}),
		}).
		Create(newEmailScheduleModel(schedule)).Error
	if err != nil {
		return fmt.Errorf("upsert email schedule: %w", err)
	}

	return nil
}

func (r *emailScheduleRepository) Get(ctx context.Context, tripID, userID string, emailType domain.EmailType) (*domain.EmailSchedule, error) {
	var m emailScheduleModel
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ? AND email_type = ?", tripID, userID, string(emailType)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmailScheduleNotFound
		}
		return nil, fmt.Errorf("get email schedule: %w", err)
	}

	return m.toDomain(), nil
}

func (r *emailScheduleRepository) Delete(ctx context.Context, tripID, userID string, emailType domain.EmailType) error {
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ? AND email_type = ?", tripID, userID, string(emailType)).
		Delete(&emailScheduleModel{}).Error
	if err != nil {
		return fmt.Errorf("delete email schedule: %w", err)
	}

	return nil
}

// ListDue returns unsent, unskipped records scheduled at or before now that
// have failed fewer than maxAttempts times, oldest first. Records claimed by
// another sweep are included; Claim filters them out.
func (r *emailScheduleRepository) ListDue(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*domain.EmailSchedule, error) {
	var models []emailScheduleModel
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND skipped_at IS NULL").
		Where("scheduled_for <= ?", now).
		Where("attempts < ?", maxAttempts).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list due email schedules: %w", err)
	}

	out := make([]*domain.EmailSchedule, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}

	return out, nil
}

// Claim takes ownership of a record for one send attempt. It succeeds only
// when the record is still pending and unclaimed, or its previous claim is
// older than claimTTL.
func (r *emailScheduleRepository) Claim(ctx context.Context, id, token string, now time.Time, claimTTL time.Duration) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&emailScheduleModel{}).
		Where("id = ? AND sent_at IS NULL AND skipped_at IS NULL", id).
		Where("(claimed_at IS NULL OR claimed_at < ?)", now.Add(-claimTTL)).
		Updates(map[string]any{
			"claim_token": token,
			"claimed_at":  now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("claim email schedule: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *emailScheduleRepository) MarkSent(ctx context.Context, id, token string, at time.Time, messageID string) error {
	return r.release(ctx, id, token, "mark sent", map[string]any{
		"sent_at":       at,
		"failed_at":     nil,
		"error_message": "",
		"message_id":    messageID,
	}, at)
}

// MarkFailed counts the attempt and releases the claim so a later sweep can
// retry until the attempt limit is reached.
func (r *emailScheduleRepository) MarkFailed(ctx context.Context, id, token string, at time.Time, message string) error {
	return r.release(ctx, id, token, "mark failed", map[string]any{
		"failed_at":     at,
		"error_message": message,
		"attempts":      gorm.Expr("attempts + 1"),
	}, at)
}

func (r *emailScheduleRepository) MarkSkipped(ctx context.Context, id, token string, at time.Time, reason string) error {
	return r.release(ctx, id, token, "mark skipped", map[string]any{
		"skipped_at":  at,
		"skip_reason": reason,
	}, at)
}

// release applies updates and clears the claim, provided token still holds it.
func (r *emailScheduleRepository) release(ctx context.Context, id, token, op string, updates map[string]any, at time.Time) error {
	updates["claim_token"] = ""
	updates["claimed_at"] = nil
	updates["updated_at"] = at

	result := r.db.WithContext(ctx).
		Model(&emailScheduleModel{}).
		Where("id = ? AND claim_token = ?", id, token).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("%s: %w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", op, id, domain.ErrClaimLost)
	}

	return nil
}
