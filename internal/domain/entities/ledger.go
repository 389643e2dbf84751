package entities

import "time"

// ProcessingLedgerEntry marks a meeting whose Phase-1 side effects have all
// completed. Presence is the sole authority for the at-most-once guarantee:
// it is written only after every side effect for the meeting succeeded, and
// is never mutated or deleted.
type ProcessingLedgerEntry struct {
	MeetingID   string    `json:"meeting_id" gorm:"type:varchar(255);primaryKey"`
	ProcessedAt time.Time `json:"processed_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ProcessingLedgerEntry) TableName() string {
	return "processing_ledger"
}
