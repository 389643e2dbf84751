package pipeline

import (
	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// EffectiveHost picks the host to notify: the manifest's host when one was
// captured at scheduling time, otherwise the host named in the notification.
func EffectiveHost(manifest *entities.ScheduledMeeting, notificationHost string) string {
	if manifest != nil && manifest.HostEmail != "" {
		return manifest.HostEmail
	}
	return notificationHost
}

// ResolveRecipients builds the notification list for a meeting. Manifest
// participants come first; an empty manifest falls back to just the host;
// the host is appended when not already listed. Duplicates are dropped
// keeping first occurrence order.
func ResolveRecipients(manifest *entities.ScheduledMeeting, notificationHost string) []string {
	host := EffectiveHost(manifest, notificationHost)

	var recipients []string
	if manifest != nil {
		recipients = append(recipients, manifest.Participants...)
	}
	if len(recipients) == 0 && host != "" {
		recipients = []string{host}
	}
	if host != "" && !contains(recipients, host) {
		recipients = append(recipients, host)
	}

	return dedupe(recipients)
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, e := range list {
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
