package enrichment

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

func user(email string) entities.User {
	return entities.User{ID: uuid.New(), Email: email, IsActive: true}
}

func TestStageTrainingEntries_CrossProduct(t *testing.T) {
	users := []entities.User{user("a@acme.com"), user("b@acme.com")}
	tags := []string{"#Escalation", "#Sales", "#Coaching"}

	entries := StageTrainingEntries("m-1", tags, users)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries (2 users x 2 matched tags), got %d", len(entries))
	}

	categories := map[string]int{}
	for _, e := range entries {
		if e.MeetingID != "m-1" {
			t.Fatalf("unexpected meeting id %q", e.MeetingID)
		}
		if e.Status != entities.TrainingStatusPendingReview {
			t.Fatalf("new entries must be pending review, got %q", e.Status)
		}
		categories[e.CoachingCategory]++
	}
	if categories["Escalation"] != 2 || categories["Coaching"] != 2 {
		t.Fatalf("unexpected category distribution %v", categories)
	}
	if categories["Sales"] != 0 {
		t.Fatal("non-coaching tag must not stage entries")
	}
}

func TestStageTrainingEntries_SingleMatch(t *testing.T) {
	users := []entities.User{user("a@acme.com"), user("b@acme.com")}
	entries := StageTrainingEntries("m-1", []string{"#Coaching", "#Sales"}, users)
	if len(entries) != 2 {
		t.Fatalf("expected one entry per participant, got %d", len(entries))
	}
}

func TestStageTrainingEntries_NoCoachingTags(t *testing.T) {
	users := []entities.User{user("a@acme.com")}
	if entries := StageTrainingEntries("m-1", []string{"#Sales", "#Planning"}, users); entries != nil {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestStageTrainingEntries_NoInternalUsers(t *testing.T) {
	if entries := StageTrainingEntries("m-1", []string{"#Coaching"}, nil); entries != nil {
		t.Fatalf("expected no entries without internal users, got %d", len(entries))
	}
}
