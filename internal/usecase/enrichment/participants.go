package enrichment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
	"github.com/ecstasyholdings/meeting-brain/internal/domain/repositories"
)

// placeholderLabels stand in when no manifest was captured for a meeting.
// Classification still proceeds; only training staging needs real identities.
var placeholderLabels = []string{"Participant A", "Participant B"}

// ParticipantResolution pairs the labels handed to the classifier with the
// internal users eligible for training-queue staging
type ParticipantResolution struct {
	Labels        []string
	InternalUsers []entities.User
}

// ResolveParticipants turns a meeting's manifest into classifier labels and
// the internal-user subset. A missing manifest degrades to placeholder
// labels with zero internal users.
func ResolveParticipants(ctx context.Context, manifestRepo repositories.ManifestRepository, userRepo repositories.UserRepository, meetingID string) (*ParticipantResolution, error) {
	manifest, err := manifestRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("manifest lookup failed: %w", err)
	}
	if manifest == nil || len(manifest.Participants) == 0 {
		return &ParticipantResolution{Labels: placeholderLabels}, nil
	}

	internal, err := userRepo.FindActiveByEmail(ctx, manifest.Participants)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	internalByEmail := make(map[string]entities.User, len(internal))
	for _, u := range internal {
		internalByEmail[strings.ToLower(u.Email)] = u
	}

	res := &ParticipantResolution{}
	seen := make(map[string]struct{})
	for _, email := range manifest.Participants {
		key := strings.ToLower(strings.TrimSpace(email))
		if key == "" {
			continue
		}
		if u, ok := internalByEmail[key]; ok {
			res.Labels = append(res.Labels, fmt.Sprintf("%s (Internal)", u.Email))
			if _, dup := seen[key]; !dup {
				res.InternalUsers = append(res.InternalUsers, u)
				seen[key] = struct{}{}
			}
		} else {
			res.Labels = append(res.Labels, fmt.Sprintf("%s (External)", email))
		}
	}
	return res, nil
}
