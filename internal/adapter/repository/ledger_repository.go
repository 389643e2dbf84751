package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// LedgerRepository handles the processed-meeting ledger
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// IsProcessed reports whether a meeting id has already been handled
func (r *LedgerRepository) IsProcessed(ctx context.Context, meetingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ProcessingLedgerEntry{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkProcessed records a meeting id in the ledger. Marking an id that is
// already present is a no-op, not an error.
func (r *LedgerRepository) MarkProcessed(ctx context.Context, meetingID string) error {
	if meetingID == "" {
		return entities.ErrInvalidMeetingID
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			DoNothing: true,
		}).
		Create(&entities.ProcessingLedgerEntry{MeetingID: meetingID}).Error
}
