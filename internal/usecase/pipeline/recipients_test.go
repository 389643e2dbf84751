package pipeline

import (
	"reflect"
	"testing"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

func TestResolveRecipients_ManifestWithHostListed(t *testing.T) {
	manifest := &entities.ScheduledMeeting{
		HostEmail:    "host@acme.com",
		Participants: []string{"a@acme.com", "host@acme.com", "b@acme.com"},
	}
	got := ResolveRecipients(manifest, "notification-host@acme.com")
	want := []string{"a@acme.com", "host@acme.com", "b@acme.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveRecipients_HostAppendedWhenAbsent(t *testing.T) {
	manifest := &entities.ScheduledMeeting{
		HostEmail:    "host@acme.com",
		Participants: []string{"a@acme.com", "b@acme.com"},
	}
	got := ResolveRecipients(manifest, "")
	want := []string{"a@acme.com", "b@acme.com", "host@acme.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveRecipients_EmptyManifestFallsBackToHost(t *testing.T) {
	got := ResolveRecipients(nil, "host@acme.com")
	want := []string{"host@acme.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveRecipients_ManifestHostWinsOverNotificationHost(t *testing.T) {
	manifest := &entities.ScheduledMeeting{
		HostEmail:    "form-host@acme.com",
		Participants: []string{"a@acme.com"},
	}
	got := ResolveRecipients(manifest, "zoom-host@acme.com")
	want := []string{"a@acme.com", "form-host@acme.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveRecipients_NoHostAnywhere(t *testing.T) {
	if got := ResolveRecipients(nil, ""); len(got) != 0 {
		t.Fatalf("expected empty recipients, got %v", got)
	}
}

func TestResolveRecipients_DuplicatesDroppedKeepingOrder(t *testing.T) {
	manifest := &entities.ScheduledMeeting{
		HostEmail:    "host@acme.com",
		Participants: []string{"a@acme.com", "a@acme.com", "b@acme.com", "b@acme.com"},
	}
	got := ResolveRecipients(manifest, "")
	want := []string{"a@acme.com", "b@acme.com", "host@acme.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
