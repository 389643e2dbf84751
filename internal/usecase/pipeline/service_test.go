package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
	"github.com/ecstasyholdings/meeting-brain/pkg/email"
)

// --- fakes ---

type fakeRecordRepo struct {
	records map[string]*entities.MeetingRecord
	err     error
}

func (f *fakeRecordRepo) CreateIgnoreConflict(ctx context.Context, r *entities.MeetingRecord) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.records[r.MeetingID]; !exists {
		f.records[r.MeetingID] = r
	}
	return nil
}

func (f *fakeRecordRepo) FindByMeetingID(ctx context.Context, id string) (*entities.MeetingRecord, error) {
	return f.records[id], nil
}

func (f *fakeRecordRepo) ListRecent(ctx context.Context, limit int) ([]entities.MeetingRecord, error) {
	return nil, nil
}

type fakeLedger struct {
	processed map[string]bool
	markErr   error
}

func (f *fakeLedger) IsProcessed(ctx context.Context, id string) (bool, error) {
	return f.processed[id], nil
}

func (f *fakeLedger) MarkProcessed(ctx context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.processed[id] = true
	return nil
}

type fakeManifestRepo struct {
	manifest *entities.ScheduledMeeting
}

func (f *fakeManifestRepo) FindByMeetingID(ctx context.Context, id string) (*entities.ScheduledMeeting, error) {
	return f.manifest, nil
}

type fakeFetcher struct {
	err       error
	cleanedUp bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, downloadURL, token string) (string, func(), error) {
	if f.err != nil {
		return "", nil, f.err
	}
	tmp, err := os.CreateTemp("", "fetch-test-*")
	if err != nil {
		return "", nil, err
	}
	tmp.WriteString("audio-bytes")
	tmp.Close()
	return tmp.Name(), func() {
		f.cleanedUp = true
		os.Remove(tmp.Name())
	}, nil
}

type fakeStorage struct {
	uploadErr     error
	transcriptErr error
	transcripts   map[string]string
}

func (f *fakeStorage) UploadRecording(ctx context.Context, meetingID, filename string, r io.Reader, size int64, ct string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return fmt.Sprintf("%s/%s", meetingID, filename), nil
}

func (f *fakeStorage) RecordingURL(ctx context.Context, objectName string) (string, error) {
	return "https://storage.example/" + objectName, nil
}

func (f *fakeStorage) UploadTranscript(ctx context.Context, objectName, content string) error {
	if f.transcriptErr != nil {
		return f.transcriptErr
	}
	if f.transcripts == nil {
		f.transcripts = map[string]string{}
	}
	f.transcripts[objectName] = content
	return nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) TranscribeFromURL(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

type fakeSummarizer struct {
	text   string
	err    error
	called bool
}

func (f *fakeSummarizer) GenerateSummary(ctx context.Context, transcript string) (string, error) {
	f.called = true
	return f.text, f.err
}

type fakeEmailer struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeEmailer) SendSummary(ctx context.Context, to email.Recipient, msg email.SummaryEmail) error {
	if f.failFor[to.Email] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, to.Email)
	return nil
}

type fixture struct {
	records     *fakeRecordRepo
	ledger      *fakeLedger
	manifests   *fakeManifestRepo
	fetcher     *fakeFetcher
	storage     *fakeStorage
	transcriber *fakeTranscriber
	summarizer  *fakeSummarizer
	emailer     *fakeEmailer
	svc         Service
}

func newFixture() *fixture {
	f := &fixture{
		records:     &fakeRecordRepo{records: map[string]*entities.MeetingRecord{}},
		ledger:      &fakeLedger{processed: map[string]bool{}},
		manifests:   &fakeManifestRepo{},
		fetcher:     &fakeFetcher{},
		storage:     &fakeStorage{},
		transcriber: &fakeTranscriber{text: "we agreed to ship friday"},
		summarizer:  &fakeSummarizer{text: "- Ship on Friday"},
		emailer:     &fakeEmailer{},
	}
	f.svc = NewService(f.records, f.ledger, f.manifests, f.fetcher, f.storage,
		f.transcriber, f.summarizer, f.emailer, zap.NewNop())
	return f
}

func notification() *RecordingNotification {
	return &RecordingNotification{
		MeetingID: "meeting-42",
		HostEmail: "host@acme.com",
		StartTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Files: []RecordingFile{
			{ID: "f1", FileType: "MP4", DownloadURL: "https://source/video"},
			{ID: "f2", FileType: "M4A", DownloadURL: "https://source/audio"},
		},
		DownloadToken: "tok",
	}
}

// --- tests ---

func TestProcessRecording_HappyPath(t *testing.T) {
	f := newFixture()

	ack, err := f.svc.ProcessRecording(context.Background(), notification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack != AckSuccess {
		t.Fatalf("expected success ack, got %q", ack)
	}

	record := f.records.records["meeting-42"]
	if record == nil {
		t.Fatal("record not persisted")
	}
	if record.Transcript != "we agreed to ship friday" || record.Summary != "- Ship on Friday" {
		t.Fatalf("unexpected record content: %+v", record)
	}
	if !f.ledger.processed["meeting-42"] {
		t.Fatal("ledger not marked")
	}
	if !f.fetcher.cleanedUp {
		t.Fatal("scratch file not cleaned up")
	}
	if got := f.storage.transcripts["meeting-42/transcript.txt"]; got != "we agreed to ship friday" {
		t.Fatalf("enrichment trigger not written, got %q", got)
	}
	if len(f.emailer.sent) != 1 || f.emailer.sent[0] != "host@acme.com" {
		t.Fatalf("unexpected recipients notified: %v", f.emailer.sent)
	}
}

func TestProcessRecording_Duplicate(t *testing.T) {
	f := newFixture()
	f.ledger.processed["meeting-42"] = true

	ack, err := f.svc.ProcessRecording(context.Background(), notification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack != AckDuplicate {
		t.Fatalf("expected duplicate ack, got %q", ack)
	}
	if len(f.records.records) != 0 {
		t.Fatal("duplicate must not persist anything")
	}
	if len(f.emailer.sent) != 0 {
		t.Fatal("duplicate must not send email")
	}
}

func TestProcessRecording_NoAudioFile(t *testing.T) {
	f := newFixture()
	n := notification()
	n.Files = []RecordingFile{{ID: "f1", FileType: "MP4", DownloadURL: "https://source/video"}}

	ack, err := f.svc.ProcessRecording(context.Background(), n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack != AckNoAudioFile {
		t.Fatalf("expected no-audio ack, got %q", ack)
	}
	if f.ledger.processed["meeting-42"] {
		t.Fatal("no-audio ack must not mark the ledger")
	}
}

func TestProcessRecording_DownloadFailureIsFatal(t *testing.T) {
	f := newFixture()
	f.fetcher.err = errors.New("connection refused")

	_, err := f.svc.ProcessRecording(context.Background(), notification())
	if err == nil {
		t.Fatal("expected fatal error")
	}
	if len(f.records.records) != 0 {
		t.Fatal("no record may be written on download failure")
	}
	if f.ledger.processed["meeting-42"] {
		t.Fatal("ledger must stay unmarked so the source can retry")
	}
}

func TestProcessRecording_TranscriptionDegrades(t *testing.T) {
	f := newFixture()
	f.transcriber.err = errors.New("upstream 500")

	ack, err := f.svc.ProcessRecording(context.Background(), notification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack != AckSuccess {
		t.Fatalf("expected success ack, got %q", ack)
	}

	record := f.records.records["meeting-42"]
	if record.Transcript != TranscriptFailureSentinel {
		t.Fatalf("expected transcript sentinel, got %q", record.Transcript)
	}
	if record.Summary != SummaryFailureSentinel {
		t.Fatalf("expected summary sentinel, got %q", record.Summary)
	}
	if f.summarizer.called {
		t.Fatal("summarizer must not be called on sentinel transcript")
	}
	if !f.ledger.processed["meeting-42"] {
		t.Fatal("degraded run still marks the ledger")
	}
}

func TestProcessRecording_SummaryDegradesAlone(t *testing.T) {
	f := newFixture()
	f.summarizer.err = errors.New("rate limited")

	_, err := f.svc.ProcessRecording(context.Background(), notification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record := f.records.records["meeting-42"]
	if record.Transcript != "we agreed to ship friday" {
		t.Fatalf("transcript should survive summary failure, got %q", record.Transcript)
	}
	if record.Summary != SummaryFailureSentinel {
		t.Fatalf("expected summary sentinel, got %q", record.Summary)
	}
}

func TestProcessRecording_PerRecipientEmailFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.manifests.manifest = &entities.ScheduledMeeting{
		HostEmail:    "host@acme.com",
		Participants: []string{"a@acme.com", "b@acme.com"},
	}
	f.emailer.failFor = map[string]bool{"a@acme.com": true}

	ack, err := f.svc.ProcessRecording(context.Background(), notification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack != AckSuccess {
		t.Fatalf("expected success ack, got %q", ack)
	}
	if len(f.emailer.sent) != 2 {
		t.Fatalf("remaining recipients must still be notified, sent=%v", f.emailer.sent)
	}
}

func TestProcessRecording_PersistenceFailureIsFatal(t *testing.T) {
	f := newFixture()
	f.records.err = errors.New("db down")

	_, err := f.svc.ProcessRecording(context.Background(), notification())
	if err == nil {
		t.Fatal("expected fatal error")
	}
	if f.ledger.processed["meeting-42"] {
		t.Fatal("ledger must not be marked when persistence fails")
	}
}

func TestProcessRecording_TriggerWriteFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.storage.transcriptErr = errors.New("bucket offline")

	ack, err := f.svc.ProcessRecording(context.Background(), notification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack != AckSuccess {
		t.Fatalf("expected success ack, got %q", ack)
	}
	if !f.ledger.processed["meeting-42"] {
		t.Fatal("run must still commit when only the trigger write fails")
	}
}

func TestProcessRecording_ScratchCleanupOnUploadFailure(t *testing.T) {
	f := newFixture()
	f.storage.uploadErr = errors.New("storage down")

	if _, err := f.svc.ProcessRecording(context.Background(), notification()); err == nil {
		t.Fatal("expected fatal error")
	}
	if !f.fetcher.cleanedUp {
		t.Fatal("scratch file must be removed on upload failure")
	}
}
