package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// ManifestRepository reads scheduled meeting manifests
type ManifestRepository struct {
	db *gorm.DB
}

// NewManifestRepository creates a new manifest repository
func NewManifestRepository(db *gorm.DB) *ManifestRepository {
	return &ManifestRepository{db: db}
}

// FindByMeetingID retrieves the participant manifest for a meeting, nil when
// the meeting was never scheduled through us
func (r *ManifestRepository) FindByMeetingID(ctx context.Context, meetingID string) (*entities.ScheduledMeeting, error) {
	var manifest entities.ScheduledMeeting
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&manifest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manifest, nil
}
