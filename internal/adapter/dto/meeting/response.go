package meeting

import (
	"time"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// Summary is the list-view projection of a meeting record
type Summary struct {
	MeetingID   string    `json:"meeting_id"`
	HostEmail   string    `json:"host_email"`
	MeetingTime time.Time `json:"meeting_time"`
	Summary     string    `json:"summary"`
	Subsidiary  string    `json:"subsidiary,omitempty"`
	MeetingType string    `json:"meeting_type,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Enriched    bool      `json:"enriched"`
	CreatedAt   time.Time `json:"created_at"`
}

// Detail is the full meeting record response
type Detail struct {
	Summary
	CreatedByEmail     string   `json:"created_by_email"`
	Recipients         []string `json:"recipients"`
	RecordingURL       string   `json:"recording_url"`
	Transcript         string   `json:"transcript"`
	Department         string   `json:"department,omitempty"`
	MeetingSubtype     string   `json:"meeting_subtype,omitempty"`
	KeyDecisions       []string `json:"key_decisions,omitempty"`
	EnrichedOutputPath string   `json:"enriched_output_path,omitempty"`
}

// NewSummary maps a record to its list projection
func NewSummary(r *entities.MeetingRecord) Summary {
	return Summary{
		MeetingID:   r.MeetingID,
		HostEmail:   r.HostEmail,
		MeetingTime: r.MeetingTime,
		Summary:     r.Summary,
		Subsidiary:  r.Subsidiary,
		MeetingType: r.MeetingType,
		Tags:        r.Tags,
		Enriched:    r.IsEnriched(),
		CreatedAt:   r.CreatedAt,
	}
}

// NewDetail maps a record to its full response
func NewDetail(r *entities.MeetingRecord) Detail {
	return Detail{
		Summary:            NewSummary(r),
		CreatedByEmail:     r.CreatedByEmail,
		Recipients:         r.Recipients,
		RecordingURL:       r.RecordingURL,
		Transcript:         r.Transcript,
		Department:         r.Department,
		MeetingSubtype:     r.MeetingSubtype,
		KeyDecisions:       r.KeyDecisions,
		EnrichedOutputPath: r.EnrichedOutputPath,
	}
}
