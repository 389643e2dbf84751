package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// EnrichmentRepository commits enrichment results atomically
type EnrichmentRepository struct {
	db *gorm.DB
}

// NewEnrichmentRepository creates a new enrichment repository
func NewEnrichmentRepository(db *gorm.DB) *EnrichmentRepository {
	return &EnrichmentRepository{db: db}
}

// CommitEnrichment persists the classified record fields and the staged
// training queue entries in a single transaction. Either everything lands
// or nothing does.
func (r *EnrichmentRepository) CommitEnrichment(ctx context.Context, record *entities.MeetingRecord, entries []entities.TrainingQueueEntry) error {
	if record == nil {
		return errors.New("meeting record cannot be nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.MeetingRecord{}).
			Where("meeting_id = ?", record.MeetingID).
			Select("subsidiary", "department", "meeting_type", "meeting_subtype",
				"tags", "key_decisions", "enriched_output_path").
			Updates(record)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrMeetingRecordNotFound
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
