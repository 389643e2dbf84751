package ai

import (
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

// AssemblyAIClient wraps the AssemblyAI SDK for transcription
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		client: aai.NewClient(apiKey),
	}
}

// TranscribeFromURL submits an audio URL for transcription and waits for the
// result. Returns the transcript text; an empty string with a nil error means
// the provider produced no usable content.
func (c *AssemblyAIClient) TranscribeFromURL(ctx context.Context, audioURL string) (string, error) {
	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		LanguageDetection: aai.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("transcription failed: %s", msg)
	}
	if transcript.Text == nil {
		return "", nil
	}
	return *transcript.Text, nil
}
