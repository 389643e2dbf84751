package repositories

import (
	"context"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// MeetingRecordRepository defines meeting record data access.
// Lookups return (nil, nil) when no row exists.
type MeetingRecordRepository interface {
	// CreateIgnoreConflict inserts the record, silently keeping an existing
	// row for the same meeting id (tolerates races between retried
	// notifications).
	CreateIgnoreConflict(ctx context.Context, record *entities.MeetingRecord) error
	FindByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingRecord, error)
	ListRecent(ctx context.Context, limit int) ([]entities.MeetingRecord, error)
}

// LedgerRepository is the deduplication ledger.
type LedgerRepository interface {
	IsProcessed(ctx context.Context, meetingID string) (bool, error)
	// MarkProcessed is idempotent: a second mark for the same id is a no-op.
	MarkProcessed(ctx context.Context, meetingID string) error
}

// ManifestRepository reads the participant manifests written at scheduling time.
type ManifestRepository interface {
	FindByMeetingID(ctx context.Context, meetingID string) (*entities.ScheduledMeeting, error)
}
