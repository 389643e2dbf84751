package enrichment

import (
	"testing"
	"time"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

func TestArtifactPath(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	c := &entities.Classification{Subsidiary: "Acme Trading Co", MeetingType: "Pipeline Review"}

	got := ArtifactPath(now, c, "m-42")
	want := "2025/AcmeTradingCo/PipelineReview/2025-06-15_m-42.json"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArtifactPath_MissingSegmentsFallBack(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	got := ArtifactPath(now, &entities.Classification{}, "m-7")
	want := "2025/UnknownSubsidiary/UnknownType/2025-01-02_m-7.json"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
