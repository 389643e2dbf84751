package entities

import (
	"time"

	"github.com/google/uuid"
)

// TrainingQueueStatus is the review state of a staged coaching moment
type TrainingQueueStatus string

const (
	TrainingStatusPendingReview TrainingQueueStatus = "pending_review"
	TrainingStatusReviewed      TrainingQueueStatus = "reviewed"
	TrainingStatusDismissed     TrainingQueueStatus = "dismissed"
)

// IsValid checks if the status is valid
func (s TrainingQueueStatus) IsValid() bool {
	switch s {
	case TrainingStatusPendingReview, TrainingStatusReviewed, TrainingStatusDismissed:
		return true
	}
	return false
}

// TrainingQueueEntry stages one (internal participant, coaching category)
// pairing from an enriched meeting for human review. Entries are created only
// by the enrichment run and consumed by an external review process.
type TrainingQueueEntry struct {
	ID                uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	MeetingID         string              `json:"meeting_id" gorm:"type:varchar(255);not null;index"`
	ParticipantUserID uuid.UUID           `json:"participant_user_id" gorm:"type:uuid;not null"`
	CoachingCategory  string              `json:"coaching_category" gorm:"type:varchar(255);not null"`
	Status            TrainingQueueStatus `json:"status" gorm:"type:varchar(50);default:'pending_review';not null"`
	CreatedAt         time.Time           `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (TrainingQueueEntry) TableName() string {
	return "training_queue"
}

// NewTrainingQueueEntry stages a pending-review entry
func NewTrainingQueueEntry(meetingID string, participantUserID uuid.UUID, category string) *TrainingQueueEntry {
	return &TrainingQueueEntry{
		ID:                uuid.New(),
		MeetingID:         meetingID,
		ParticipantUserID: participantUserID,
		CoachingCategory:  category,
		Status:            TrainingStatusPendingReview,
		CreatedAt:         time.Now().UTC(),
	}
}
