package enrichment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
	"github.com/ecstasyholdings/meeting-brain/pkg/jobcontext"
)

// ParseClassification parses a model response into a Classification. The
// model is instructed to return bare JSON but sometimes wraps it in markdown
// fences; those are stripped first. A response that still does not parse is
// a non-retryable failure: the same prompt would yield the same garbage.
func ParseClassification(raw string) (*entities.Classification, error) {
	cleaned := extractJSON(raw)

	var c entities.Classification
	if err := json.Unmarshal([]byte(cleaned), &c); err != nil {
		return nil, fmt.Errorf("%w: classification response is not valid JSON: %v", jobcontext.ErrNonRetryable, err)
	}
	return &c, nil
}

// extractJSON strips a markdown code fence when the model wrapped its output
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
