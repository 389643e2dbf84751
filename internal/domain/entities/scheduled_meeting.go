package entities

import (
	"time"

	"gorm.io/datatypes"
)

// ScheduledMeeting is the participant manifest written by the external
// scheduling flow when a meeting is booked. The pipeline only ever reads it;
// a missing row is a valid state and degrades to host-only notification.
type ScheduledMeeting struct {
	MeetingID      string                      `json:"meeting_id" gorm:"type:varchar(255);primaryKey"`
	Topic          string                      `json:"topic" gorm:"type:text"`
	StartTime      time.Time                   `json:"start_time"`
	Duration       int                         `json:"duration"`
	Agenda         string                      `json:"agenda" gorm:"type:text"`
	Participants   datatypes.JSONSlice[string] `json:"participants" gorm:"type:jsonb"`
	HostEmail      string                      `json:"host_email" gorm:"type:varchar(255)"`
	CreatedByEmail string                      `json:"created_by_email" gorm:"type:varchar(255)"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ScheduledMeeting) TableName() string {
	return "scheduled_meetings"
}
