package entities

import "errors"

// Domain errors
var (
	ErrMeetingRecordNotFound = errors.New("meeting record not found")
	ErrManifestNotFound      = errors.New("participant manifest not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrQueueEntryNotFound    = errors.New("training queue entry not found")

	ErrInvalidMeetingID = errors.New("invalid meeting id")
	ErrInvalidStatus    = errors.New("invalid status")
)
