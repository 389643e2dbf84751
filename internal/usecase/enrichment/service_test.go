package enrichment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/search"
	"github.com/ecstasyholdings/meeting-brain/pkg/jobcontext"
)

// --- fakes ---

type fakeRecordRepo struct {
	record *entities.MeetingRecord
}

func (f *fakeRecordRepo) CreateIgnoreConflict(ctx context.Context, r *entities.MeetingRecord) error {
	return nil
}

func (f *fakeRecordRepo) FindByMeetingID(ctx context.Context, id string) (*entities.MeetingRecord, error) {
	return f.record, nil
}

func (f *fakeRecordRepo) ListRecent(ctx context.Context, limit int) ([]entities.MeetingRecord, error) {
	return nil, nil
}

type fakeManifestRepo struct {
	manifest *entities.ScheduledMeeting
}

func (f *fakeManifestRepo) FindByMeetingID(ctx context.Context, id string) (*entities.ScheduledMeeting, error) {
	return f.manifest, nil
}

type fakeUserRepo struct {
	users []entities.User
}

func (f *fakeUserRepo) FindActiveByEmail(ctx context.Context, emails []string) ([]entities.User, error) {
	return f.users, nil
}

type fakeEnrichRepo struct {
	committed *entities.MeetingRecord
	entries   []entities.TrainingQueueEntry
	err       error
}

func (f *fakeEnrichRepo) CommitEnrichment(ctx context.Context, record *entities.MeetingRecord, entries []entities.TrainingQueueEntry) error {
	if f.err != nil {
		return f.err
	}
	f.committed = record
	f.entries = entries
	return nil
}

type fakeStorage struct {
	transcript   string
	artifactPath string
	artifact     []byte
}

func (f *fakeStorage) GetTranscript(ctx context.Context, objectName string) (string, error) {
	return f.transcript, nil
}

func (f *fakeStorage) UploadEnrichedArtifact(ctx context.Context, objectName string, payload []byte) error {
	f.artifactPath = objectName
	f.artifact = payload
	return nil
}

type fakeClassifier struct {
	response string
	err      error
	labels   []string
}

func (f *fakeClassifier) ClassifyMeeting(ctx context.Context, transcript string, labels []string) (string, error) {
	f.labels = labels
	return f.response, f.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}

type fakeIndexer struct {
	doc *search.MeetingDocument
	err error
}

func (f *fakeIndexer) Upsert(ctx context.Context, doc *search.MeetingDocument) error {
	if f.err != nil {
		return f.err
	}
	f.doc = doc
	return nil
}

type enrichFixture struct {
	records    *fakeRecordRepo
	manifests  *fakeManifestRepo
	users      *fakeUserRepo
	enrich     *fakeEnrichRepo
	storage    *fakeStorage
	classifier *fakeClassifier
	embedder   *fakeEmbedder
	indexer    *fakeIndexer
	svc        Service
}

func newEnrichFixture() *enrichFixture {
	internal := entities.User{ID: uuid.New(), Email: "rep@acme.com", IsActive: true}
	f := &enrichFixture{
		records:   &fakeRecordRepo{record: &entities.MeetingRecord{MeetingID: "m-42"}},
		manifests: &fakeManifestRepo{manifest: &entities.ScheduledMeeting{
			MeetingID:    "m-42",
			Participants: []string{"rep@acme.com", "guest@ext.com"},
		}},
		users:      &fakeUserRepo{users: []entities.User{internal}},
		enrich:     &fakeEnrichRepo{},
		storage:    &fakeStorage{transcript: "we escalated the outage"},
		classifier: &fakeClassifier{response: `{"subsidiary":"Acme Ltd","department":"Ops","meeting_type":"Incident Review","tags":["#Escalation"]}`},
		embedder:   &fakeEmbedder{vector: []float32{0.1, 0.2}},
		indexer:    &fakeIndexer{},
	}
	f.svc = NewService(f.records, f.manifests, f.users, f.enrich, f.storage,
		f.classifier, f.embedder, f.indexer, zap.NewNop())
	f.svc.(*enrichmentService).now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return f
}

// --- tests ---

func TestEnrichTranscript_HappyPath(t *testing.T) {
	f := newEnrichFixture()

	if err := f.svc.EnrichTranscript(context.Background(), "m-42/transcript.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.enrich.committed == nil {
		t.Fatal("enrichment not committed")
	}
	if f.enrich.committed.Subsidiary != "Acme Ltd" {
		t.Fatalf("classification not applied: %+v", f.enrich.committed)
	}
	wantPath := "2025/AcmeLtd/IncidentReview/2025-06-15_m-42.json"
	if f.enrich.committed.EnrichedOutputPath != wantPath {
		t.Fatalf("unexpected output path %q", f.enrich.committed.EnrichedOutputPath)
	}
	if len(f.enrich.entries) != 1 || f.enrich.entries[0].CoachingCategory != "Escalation" {
		t.Fatalf("unexpected staged entries %+v", f.enrich.entries)
	}
	if f.indexer.doc == nil || f.indexer.doc.MeetingID != "m-42" {
		t.Fatal("vector index not upserted")
	}
	if f.storage.artifactPath != wantPath {
		t.Fatalf("artifact written to %q, want %q", f.storage.artifactPath, wantPath)
	}

	// Classifier saw the internal/external labels, not bare emails
	if len(f.classifier.labels) != 2 ||
		f.classifier.labels[0] != "rep@acme.com (Internal)" ||
		f.classifier.labels[1] != "guest@ext.com (External)" {
		t.Fatalf("unexpected participant labels %v", f.classifier.labels)
	}
}

func TestEnrichTranscript_MissingRecordAborts(t *testing.T) {
	f := newEnrichFixture()
	f.records.record = nil

	err := f.svc.EnrichTranscript(context.Background(), "m-42/transcript.txt")
	if err == nil {
		t.Fatal("expected abort for missing record")
	}
	if !errors.Is(err, jobcontext.ErrNonRetryable) {
		t.Fatalf("missing record must be non-retryable, got %v", err)
	}
	if f.indexer.doc != nil {
		t.Fatal("index must not be touched when the record is missing")
	}
	if f.enrich.committed != nil {
		t.Fatal("nothing may be committed when the record is missing")
	}
}

func TestEnrichTranscript_ParseFailureAborts(t *testing.T) {
	f := newEnrichFixture()
	f.classifier.response = "not json at all"

	err := f.svc.EnrichTranscript(context.Background(), "m-42/transcript.txt")
	if err == nil {
		t.Fatal("expected abort on parse failure")
	}
	if !errors.Is(err, jobcontext.ErrNonRetryable) {
		t.Fatalf("parse failure must be non-retryable, got %v", err)
	}
	if f.indexer.doc != nil || f.enrich.committed != nil {
		t.Fatal("parse failure must leave no side effects")
	}
}

func TestEnrichTranscript_MissingManifestUsesPlaceholders(t *testing.T) {
	f := newEnrichFixture()
	f.manifests.manifest = nil
	f.users.users = nil

	if err := f.svc.EnrichTranscript(context.Background(), "m-42/transcript.txt"); err != nil {
		t.Fatalf("missing manifest must not abort: %v", err)
	}
	if len(f.classifier.labels) == 0 {
		t.Fatal("placeholder labels expected")
	}
	if len(f.enrich.entries) != 0 {
		t.Fatal("no internal users means no staged entries")
	}
}

func TestEnrichTranscript_CommitFailurePropagates(t *testing.T) {
	f := newEnrichFixture()
	f.enrich.err = errors.New("db down")

	if err := f.svc.EnrichTranscript(context.Background(), "m-42/transcript.txt"); err == nil {
		t.Fatal("expected commit failure to propagate")
	}
	if f.storage.artifactPath != "" {
		t.Fatal("artifact must not be written when the commit fails")
	}
}

func TestEnrichTranscript_BadObjectName(t *testing.T) {
	f := newEnrichFixture()
	if err := f.svc.EnrichTranscript(context.Background(), "transcript.txt"); err == nil {
		t.Fatal("expected error for object without meeting id folder")
	}
}
