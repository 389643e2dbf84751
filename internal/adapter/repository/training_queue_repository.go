package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// TrainingQueueRepository handles coaching review queue operations
type TrainingQueueRepository struct {
	db *gorm.DB
}

// NewTrainingQueueRepository creates a new training queue repository
func NewTrainingQueueRepository(db *gorm.DB) *TrainingQueueRepository {
	return &TrainingQueueRepository{db: db}
}

// ListByStatus returns queue entries in a given review status, oldest first
func (r *TrainingQueueRepository) ListByStatus(ctx context.Context, status entities.TrainingQueueStatus, limit int) ([]entities.TrainingQueueEntry, error) {
	if !status.IsValid() {
		return nil, entities.ErrInvalidStatus
	}
	if limit <= 0 {
		limit = 100
	}
	var entries []entities.TrainingQueueEntry
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByID retrieves a queue entry by id, nil when absent
func (r *TrainingQueueRepository) FindByID(ctx context.Context, id string) (*entities.TrainingQueueEntry, error) {
	var entry entities.TrainingQueueEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// UpdateStatus moves a queue entry to a new review status
func (r *TrainingQueueRepository) UpdateStatus(ctx context.Context, id string, status entities.TrainingQueueStatus) error {
	if !status.IsValid() {
		return entities.ErrInvalidStatus
	}
	result := r.db.WithContext(ctx).
		Model(&entities.TrainingQueueEntry{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrQueueEntryNotFound
	}
	return nil
}
