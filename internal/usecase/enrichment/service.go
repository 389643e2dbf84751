package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/ecstasyholdings/meeting-brain/errors"
	"github.com/ecstasyholdings/meeting-brain/internal/domain/repositories"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/search"
	"github.com/ecstasyholdings/meeting-brain/pkg/jobcontext"
)

// Storage is the object storage subset the enricher needs
type Storage interface {
	GetTranscript(ctx context.Context, objectName string) (string, error)
	UploadEnrichedArtifact(ctx context.Context, objectName string, payload []byte) error
}

// Classifier extracts taxonomy from a transcript
type Classifier interface {
	ClassifyMeeting(ctx context.Context, transcript string, participantLabels []string) (string, error)
}

// Embedder produces embedding vectors
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Indexer upserts searchable meeting documents
type Indexer interface {
	Upsert(ctx context.Context, doc *search.MeetingDocument) error
}

// Service runs the asynchronous enrichment phase for one transcript object
type Service interface {
	EnrichTranscript(ctx context.Context, objectName string) error
}

type enrichmentService struct {
	recordRepo   repositories.MeetingRecordRepository
	manifestRepo repositories.ManifestRepository
	userRepo     repositories.UserRepository
	enrichRepo   repositories.EnrichmentRepository
	storage      Storage
	classifier   Classifier
	embedder     Embedder
	indexer      Indexer
	logger       *zap.Logger
	now          func() time.Time
}

// NewService constructs the phase-2 enrichment service
func NewService(
	recordRepo repositories.MeetingRecordRepository,
	manifestRepo repositories.ManifestRepository,
	userRepo repositories.UserRepository,
	enrichRepo repositories.EnrichmentRepository,
	storage Storage,
	classifier Classifier,
	embedder Embedder,
	indexer Indexer,
	logger *zap.Logger,
) Service {
	return &enrichmentService{
		recordRepo:   recordRepo,
		manifestRepo: manifestRepo,
		userRepo:     userRepo,
		enrichRepo:   enrichRepo,
		storage:      storage,
		classifier:   classifier,
		embedder:     embedder,
		indexer:      indexer,
		logger:       logger,
		now:          time.Now,
	}
}

// EnrichTranscript classifies, vectorizes, and stages coaching entries for
// the meeting whose transcript object just landed. The run is all-or-nothing
// for database state: classification parse failures and a missing meeting
// record abort before any side effect.
func (s *enrichmentService) EnrichTranscript(ctx context.Context, objectName string) error {
	meetingID := meetingIDFromObject(objectName)
	if meetingID == "" {
		return fmt.Errorf("%w: cannot derive meeting id from object %q", jobcontext.ErrNonRetryable, objectName)
	}
	log := s.logger.With(zap.String("meeting_id", meetingID), zap.String("object", objectName))

	// Gate on the phase-1 record before doing anything
	record, err := s.recordRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return apperrors.ErrDBQueryFailed("meeting record lookup", err)
	}
	if record == nil {
		log.Error("no meeting record for transcript object, aborting enrichment")
		return fmt.Errorf("%w: meeting record %s does not exist", jobcontext.ErrNonRetryable, meetingID)
	}

	transcript, err := s.storage.GetTranscript(ctx, objectName)
	if err != nil {
		return apperrors.ErrStorageFailed("read transcript", err)
	}

	resolution, err := ResolveParticipants(ctx, s.manifestRepo, s.userRepo, meetingID)
	if err != nil {
		return apperrors.ErrEnrichmentFailed(meetingID, err)
	}

	raw, err := s.classifier.ClassifyMeeting(ctx, transcript, resolution.Labels)
	if err != nil {
		return apperrors.ErrClassificationFailed(err)
	}
	classification, err := ParseClassification(raw)
	if err != nil {
		log.Error("classification response unparseable, aborting enrichment", zap.Error(err))
		return err
	}
	log.Info("classification complete",
		zap.String("subsidiary", classification.Subsidiary),
		zap.String("meeting_type", classification.MeetingType),
		zap.Strings("tags", classification.Tags))

	vector, err := s.embedder.CreateEmbedding(ctx, transcript)
	if err != nil {
		return apperrors.ErrEnrichmentFailed(meetingID, err)
	}

	runTime := s.now().UTC()
	doc := &search.MeetingDocument{
		MeetingID:    meetingID,
		MeetingDate:  runTime.Format(time.RFC3339),
		Transcript:   transcript,
		Subsidiary:   classification.Subsidiary,
		Department:   classification.Department,
		Participants: resolution.Labels,
		Tags:         classification.Tags,
		Vector:       vector,
	}
	if err := s.indexer.Upsert(ctx, doc); err != nil {
		return apperrors.ErrVectorIndexFailed(err)
	}

	entries := StageTrainingEntries(meetingID, classification.Tags, resolution.InternalUsers)
	outputPath := ArtifactPath(runTime, classification, meetingID)
	record.ApplyClassification(classification, outputPath)

	if err := s.enrichRepo.CommitEnrichment(ctx, record, entries); err != nil {
		return apperrors.ErrDBTransactionFailed(err)
	}

	artifact := Artifact{
		MeetingID:          meetingID,
		DateTime:           runTime.Format(time.RFC3339),
		Classification:     classification,
		Participants:       resolution.Labels,
		TranscriptBlobPath: objectName,
	}
	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err == nil {
		err = s.storage.UploadEnrichedArtifact(ctx, outputPath, payload)
	}
	if err != nil {
		// Database state already committed; the artifact is derivable and a
		// re-run would duplicate queue entries, so log instead of failing
		log.Error("enriched artifact upload failed", zap.String("path", outputPath), zap.Error(err))
	}

	log.Info("enrichment committed",
		zap.Int("training_entries", len(entries)),
		zap.String("artifact_path", outputPath))
	return nil
}

// meetingIDFromObject extracts the meeting id folder from
// {meeting_id}/transcript.txt style object names
func meetingIDFromObject(objectName string) string {
	parts := strings.SplitN(objectName, "/", 2)
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}
	return parts[0]
}
