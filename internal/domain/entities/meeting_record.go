package entities

import (
	"time"

	"gorm.io/datatypes"
)

// MeetingRecord is the durable, queryable record of one processed meeting.
// Phase 1 creates it with the fields up to Summary; Phase 2 fills the
// enrichment group in place. Rows are never deleted by the pipeline.
type MeetingRecord struct {
	MeetingID      string                      `json:"meeting_id" gorm:"type:varchar(255);primaryKey"`
	HostEmail      string                      `json:"host_email" gorm:"type:varchar(255)"`
	CreatedByEmail string                      `json:"created_by_email" gorm:"type:varchar(255)"`
	MeetingTime    time.Time                   `json:"meeting_time"`
	Recipients     datatypes.JSONSlice[string] `json:"recipients" gorm:"type:jsonb"`
	RecordingURL   string                      `json:"recording_url" gorm:"type:text"`
	Transcript     string                      `json:"transcript" gorm:"type:text"`
	Summary        string                      `json:"summary" gorm:"type:text"`

	// Enrichment group, absent until Phase 2 commits
	Subsidiary         string                      `json:"subsidiary,omitempty" gorm:"type:varchar(255)"`
	Department         string                      `json:"department,omitempty" gorm:"type:varchar(255)"`
	MeetingType        string                      `json:"meeting_type,omitempty" gorm:"type:varchar(255)"`
	MeetingSubtype     string                      `json:"meeting_subtype,omitempty" gorm:"type:varchar(255)"`
	Tags               datatypes.JSONSlice[string] `json:"tags,omitempty" gorm:"type:jsonb"`
	KeyDecisions       datatypes.JSONSlice[string] `json:"key_decisions,omitempty" gorm:"type:jsonb"`
	EnrichedOutputPath string                      `json:"enriched_output_path,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_meeting_records_created_at,sort:desc"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MeetingRecord) TableName() string {
	return "meeting_records"
}

// IsEnriched reports whether Phase 2 has committed for this record
func (m *MeetingRecord) IsEnriched() bool {
	return m.EnrichedOutputPath != ""
}

// ApplyClassification fills the enrichment group from a classification result
func (m *MeetingRecord) ApplyClassification(c *Classification, outputPath string) {
	m.Subsidiary = c.Subsidiary
	m.Department = c.Department
	m.MeetingType = c.MeetingType
	m.MeetingSubtype = c.MeetingSubtype
	m.Tags = c.Tags
	m.KeyDecisions = c.KeyDecisions
	m.EnrichedOutputPath = outputPath
}
