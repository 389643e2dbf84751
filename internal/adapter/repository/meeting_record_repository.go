package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// MeetingRecordRepository handles meeting record data operations
type MeetingRecordRepository struct {
	db *gorm.DB
}

// NewMeetingRecordRepository creates a new meeting record repository
func NewMeetingRecordRepository(db *gorm.DB) *MeetingRecordRepository {
	return &MeetingRecordRepository{db: db}
}

// CreateIgnoreConflict inserts the record with insert-or-ignore semantics on
// meeting_id so a retried notification racing a completed run never errors.
func (r *MeetingRecordRepository) CreateIgnoreConflict(ctx context.Context, record *entities.MeetingRecord) error {
	if record == nil {
		return errors.New("meeting record cannot be nil")
	}
	if record.MeetingID == "" {
		return entities.ErrInvalidMeetingID
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			DoNothing: true,
		}).
		Create(record).Error
}

// FindByMeetingID retrieves a record by meeting id, nil when absent
func (r *MeetingRecordRepository) FindByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingRecord, error) {
	var record entities.MeetingRecord
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListRecent returns the most recently processed meetings
func (r *MeetingRecordRepository) ListRecent(ctx context.Context, limit int) ([]entities.MeetingRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []entities.MeetingRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
