package repositories

import (
	"context"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// EnrichmentRepository commits a Phase-2 run's database writes as a unit:
// the meeting record's enrichment fields and the staged training-queue
// entries either all land or none do.
type EnrichmentRepository interface {
	CommitEnrichment(ctx context.Context, record *entities.MeetingRecord, entries []entities.TrainingQueueEntry) error
}

// TrainingQueueRepository exposes staged coaching moments to the external
// human-review flow.
type TrainingQueueRepository interface {
	ListByStatus(ctx context.Context, status entities.TrainingQueueStatus, limit int) ([]entities.TrainingQueueEntry, error)
	FindByID(ctx context.Context, id string) (*entities.TrainingQueueEntry, error)
	UpdateStatus(ctx context.Context, id string, status entities.TrainingQueueStatus) error
}

// UserRepository is the internal-employee registry lookup.
type UserRepository interface {
	// FindActiveByEmail returns the active users among the given emails.
	// Unknown emails are simply absent from the result.
	FindActiveByEmail(ctx context.Context, emails []string) ([]entities.User, error)
}
