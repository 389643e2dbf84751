package enrichment

import (
	"strings"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// coachingTags is the fixed marker set that makes a meeting coaching-relevant
var coachingTags = map[string]struct{}{
	"#Coaching":     {},
	"#Escalation":   {},
	"#Leadership":   {},
	"#Training":     {},
	"#Blocker":      {},
	"#Breakthrough": {},
}

// MatchCoachingTags returns the meeting tags that belong to the coaching set,
// in the order they appear on the meeting
func MatchCoachingTags(tags []string) []string {
	var matched []string
	for _, tag := range tags {
		if _, ok := coachingTags[tag]; ok {
			matched = append(matched, tag)
		}
	}
	return matched
}

// StageTrainingEntries builds one queue entry per (internal participant,
// matched tag) pairing so each can be reviewed independently. No internal
// users or no matched tags means nothing is staged.
func StageTrainingEntries(meetingID string, tags []string, internalUsers []entities.User) []entities.TrainingQueueEntry {
	matched := MatchCoachingTags(tags)
	if len(matched) == 0 || len(internalUsers) == 0 {
		return nil
	}

	entries := make([]entities.TrainingQueueEntry, 0, len(matched)*len(internalUsers))
	for _, user := range internalUsers {
		for _, tag := range matched {
			category := strings.TrimPrefix(tag, "#")
			entries = append(entries, *entities.NewTrainingQueueEntry(meetingID, user.ID, category))
		}
	}
	return entries
}
