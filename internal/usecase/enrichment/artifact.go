package enrichment

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// Artifact is the consolidated enrichment document written to the enriched
// bucket for downstream consumers
type Artifact struct {
	MeetingID          string                   `json:"meetingId"`
	DateTime           string                   `json:"dateTime"`
	Classification     *entities.Classification `json:"classification"`
	Participants       []string                 `json:"participants"`
	TranscriptBlobPath string                   `json:"transcript_blob_path"`
}

// ArtifactPath builds the deterministic output location
// {year}/{subsidiary}/{meeting_type}/{date}_{meeting_id}.json with spaces
// stripped from the classification segments
func ArtifactPath(now time.Time, c *entities.Classification, meetingID string) string {
	subsidiary := pathSegment(c.Subsidiary, "UnknownSubsidiary")
	meetingType := pathSegment(c.MeetingType, "UnknownType")
	return fmt.Sprintf("%s/%s/%s/%s_%s.json",
		now.UTC().Format("2006"),
		subsidiary,
		meetingType,
		now.UTC().Format("2006-01-02"),
		meetingID,
	)
}

func pathSegment(v, fallback string) string {
	v = strings.ReplaceAll(v, " ", "")
	if v == "" {
		return fallback
	}
	return v
}
