package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/ecstasyholdings/meeting-brain/errors"
	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
	"github.com/ecstasyholdings/meeting-brain/internal/domain/repositories"
	"github.com/ecstasyholdings/meeting-brain/pkg/email"
)

// Ack is the terminal disposition reported back to the webhook source
type Ack string

const (
	AckSuccess     Ack = "success"
	AckDuplicate   Ack = "duplicate"
	AckNoAudioFile Ack = "no audio file"
)

// RecordingFile is one file attached to a completed-recording notification
type RecordingFile struct {
	ID          string
	FileType    string
	DownloadURL string
}

// RecordingNotification is the parsed completion event the pipeline consumes
type RecordingNotification struct {
	MeetingID     string
	HostEmail     string
	StartTime     time.Time
	Files         []RecordingFile
	DownloadToken string
}

// Storage is the subset of object storage the pipeline needs
type Storage interface {
	UploadRecording(ctx context.Context, meetingID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	RecordingURL(ctx context.Context, objectName string) (string, error)
	UploadTranscript(ctx context.Context, objectName, content string) error
}

// Transcriber converts a durable audio URL into text
type Transcriber interface {
	TranscribeFromURL(ctx context.Context, audioURL string) (string, error)
}

// Summarizer condenses a transcript
type Summarizer interface {
	GenerateSummary(ctx context.Context, transcript string) (string, error)
}

// EmailSender delivers summary notifications
type EmailSender interface {
	SendSummary(ctx context.Context, to email.Recipient, msg email.SummaryEmail) error
}

// MediaFetcher downloads recording media to scratch storage
type MediaFetcher interface {
	Fetch(ctx context.Context, downloadURL, accessToken string) (path string, cleanup func(), err error)
}

// Service orchestrates the synchronous recording-to-record pipeline
type Service interface {
	ProcessRecording(ctx context.Context, n *RecordingNotification) (Ack, error)
}

type pipelineService struct {
	recordRepo   repositories.MeetingRecordRepository
	ledgerRepo   repositories.LedgerRepository
	manifestRepo repositories.ManifestRepository
	fetcher      MediaFetcher
	storage      Storage
	transcriber  Transcriber
	summarizer   Summarizer
	emailer      EmailSender
	logger       *zap.Logger
}

// NewService constructs the phase-1 pipeline service
func NewService(
	recordRepo repositories.MeetingRecordRepository,
	ledgerRepo repositories.LedgerRepository,
	manifestRepo repositories.ManifestRepository,
	fetcher MediaFetcher,
	storage Storage,
	transcriber Transcriber,
	summarizer Summarizer,
	emailer EmailSender,
	logger *zap.Logger,
) Service {
	return &pipelineService{
		recordRepo:   recordRepo,
		ledgerRepo:   ledgerRepo,
		manifestRepo: manifestRepo,
		fetcher:      fetcher,
		storage:      storage,
		transcriber:  transcriber,
		summarizer:   summarizer,
		emailer:      emailer,
		logger:       logger,
	}
}

// ProcessRecording runs the full pipeline for one completion notification.
// The dedup ledger gates all side effects: a meeting id already in the
// ledger is acknowledged without doing anything again.
func (s *pipelineService) ProcessRecording(ctx context.Context, n *RecordingNotification) (Ack, error) {
	if n == nil || n.MeetingID == "" {
		return "", apperrors.ErrMissingEventField("meeting id")
	}

	processed, err := s.ledgerRepo.IsProcessed(ctx, n.MeetingID)
	if err != nil {
		return "", apperrors.ErrDBQueryFailed("ledger lookup", err)
	}
	if processed {
		s.logger.Info("duplicate notification skipped", zap.String("meeting_id", n.MeetingID))
		return AckDuplicate, nil
	}

	audio := pickAudioFile(n.Files)
	if audio == nil {
		s.logger.Warn("no audio file in notification", zap.String("meeting_id", n.MeetingID))
		return AckNoAudioFile, nil
	}

	// Fatal from here on: the source should retry the whole notification
	scratchPath, cleanup, err := s.fetcher.Fetch(ctx, audio.DownloadURL, n.DownloadToken)
	if err != nil {
		return "", apperrors.ErrMediaDownloadFailed(n.MeetingID, err)
	}
	defer cleanup()

	filename := fmt.Sprintf("audio_%s.m4a", audio.ID)
	recordingURL, err := s.uploadRecording(ctx, n.MeetingID, filename, scratchPath)
	if err != nil {
		return "", apperrors.ErrStorageUploadFailed(n.MeetingID, err)
	}

	transcript := s.transcribe(ctx, n.MeetingID, recordingURL)
	summary := s.summarize(ctx, n.MeetingID, transcript)

	manifest, err := s.manifestRepo.FindByMeetingID(ctx, n.MeetingID)
	if err != nil {
		return "", apperrors.ErrDBQueryFailed("manifest lookup", err)
	}

	recipients := ResolveRecipients(manifest, n.HostEmail)
	s.notify(ctx, n.MeetingID, recipients, summary, transcript, recordingURL)

	record := &entities.MeetingRecord{
		MeetingID:      n.MeetingID,
		HostEmail:      EffectiveHost(manifest, n.HostEmail),
		CreatedByEmail: createdBy(manifest),
		MeetingTime:    n.StartTime,
		Recipients:     recipients,
		RecordingURL:   recordingURL,
		Transcript:     transcript.Output,
		Summary:        summary.Output,
	}
	if err := s.recordRepo.CreateIgnoreConflict(ctx, record); err != nil {
		return "", apperrors.ErrPersistenceFailed(n.MeetingID, err)
	}
	if err := s.ledgerRepo.MarkProcessed(ctx, n.MeetingID); err != nil {
		// Record row survives; the insert above ignores conflicts on retry
		return "", apperrors.ErrPersistenceFailed(n.MeetingID, err)
	}

	s.triggerEnrichment(ctx, n.MeetingID, transcript)

	s.logger.Info("pipeline run completed",
		zap.String("meeting_id", n.MeetingID),
		zap.Bool("transcript_usable", transcript.Usable()),
		zap.Bool("summary_usable", summary.Usable()),
		zap.Int("recipients", len(recipients)),
	)
	return AckSuccess, nil
}

// pickAudioFile selects the standalone audio track from the notification files
func pickAudioFile(files []RecordingFile) *RecordingFile {
	for i := range files {
		if strings.EqualFold(files[i].FileType, "M4A") {
			return &files[i]
		}
	}
	return nil
}

func (s *pipelineService) uploadRecording(ctx context.Context, meetingID, filename, scratchPath string) (string, error) {
	f, err := os.Open(scratchPath)
	if err != nil {
		return "", fmt.Errorf("failed to open scratch file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat scratch file: %w", err)
	}

	objectName, err := s.storage.UploadRecording(ctx, meetingID, filename, f, stat.Size(), "audio/mp4")
	if err != nil {
		return "", err
	}
	return s.storage.RecordingURL(ctx, objectName)
}

// transcribe never fails the run: an error or empty result degrades to the
// transcript sentinel
func (s *pipelineService) transcribe(ctx context.Context, meetingID, recordingURL string) StageResult {
	text, err := s.transcriber.TranscribeFromURL(ctx, recordingURL)
	if err != nil {
		s.logger.Error("transcription failed, continuing degraded",
			zap.String("meeting_id", meetingID), zap.Error(err))
		return Degraded(TranscriptFailureSentinel, err)
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Warn("transcription produced no content",
			zap.String("meeting_id", meetingID))
		return Degraded(TranscriptFailureSentinel, nil)
	}
	return Ok(text)
}

// summarize short-circuits on a sentinel transcript so no model call is
// wasted on known-failed input
func (s *pipelineService) summarize(ctx context.Context, meetingID string, transcript StageResult) StageResult {
	if !transcript.Usable() {
		return Degraded(SummaryFailureSentinel, nil)
	}
	summary, err := s.summarizer.GenerateSummary(ctx, transcript.Output)
	if err != nil {
		s.logger.Error("summarization failed, continuing degraded",
			zap.String("meeting_id", meetingID), zap.Error(err))
		return Degraded(SummaryFailureSentinel, err)
	}
	if strings.TrimSpace(summary) == "" {
		return Degraded(SummaryFailureSentinel, nil)
	}
	return Ok(summary)
}

// notify sends one summary email per recipient. Individual failures are
// logged and skipped so one bad mailbox never blocks the rest.
func (s *pipelineService) notify(ctx context.Context, meetingID string, recipients []string, summary, transcript StageResult, recordingURL string) {
	msg := email.SummaryEmail{
		Subject:      fmt.Sprintf("Summary for Meeting %s", meetingID),
		Summary:      summary.Output,
		RecordingURL: recordingURL,
	}
	if transcript.Usable() {
		msg.Transcript = transcript.Output
	}

	for _, rcpt := range recipients {
		if err := s.emailer.SendSummary(ctx, email.Recipient{Email: rcpt}, msg); err != nil {
			s.logger.Error("summary email failed",
				zap.String("meeting_id", meetingID),
				zap.String("recipient", rcpt),
				zap.Error(err))
		}
	}
}

// triggerEnrichment writes the transcript object that wakes phase 2. Failure
// is logged only: phase 1 already committed, and re-writing the object later
// re-triggers enrichment.
func (s *pipelineService) triggerEnrichment(ctx context.Context, meetingID string, transcript StageResult) {
	objectName := fmt.Sprintf("%s/transcript.txt", meetingID)
	if err := s.storage.UploadTranscript(ctx, objectName, transcript.Output); err != nil {
		s.logger.Error("enrichment trigger write failed",
			zap.String("meeting_id", meetingID),
			zap.String("object", objectName),
			zap.Error(err))
	}
}

func createdBy(manifest *entities.ScheduledMeeting) string {
	if manifest != nil && manifest.CreatedByEmail != "" {
		return manifest.CreatedByEmail
	}
	return "unknown"
}
