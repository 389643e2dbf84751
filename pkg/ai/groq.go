package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

// GroqClient is a minimal client for Groq API calls used for summarization,
// classification, and embeddings
type GroqClient struct {
	apiKey         string
	baseURL        string
	chatModel      string
	embeddingModel string
	client         *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey, base, chatModel, embedModel string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		chatModel = cfg.ChatModel
		embedModel = cfg.EmbeddingModel
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if base == "" {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}
	if chatModel == "" {
		chatModel = "llama-3.1-70b-versatile"
	}
	if embedModel == "" {
		embedModel = "text-embedding-ada-002"
	}

	return &GroqClient{
		apiKey:         apiKey,
		baseURL:        base,
		chatModel:      chatModel,
		embeddingModel: embedModel,
		client:         &http.Client{Timeout: 60 * time.Second},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// EmbeddingRequest is the shape for embedding requests
type EmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// EmbeddingResponse is a minimal embedding response shape
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

const classifySystemPrompt = `You are an AI assistant for Ecstasy Holdings. Your task is to analyze the following meeting transcript and classify it.
Analyze the content, keywords, and participant roles to make your determination.
Return ONLY a valid JSON object with the following schema and nothing else:
{
  "subsidiary": "...",
  "department": "...",
  "meeting_type": "...",
  "meeting_subtype": "...",
  "key_decisions": ["...", "..."],
  "tags": ["...", "..."]
}`

// GenerateSummary condenses a transcript into bullet points and action items
func (g *GroqClient) GenerateSummary(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(`You are an AI assistant. Summarize the following meeting transcript into concise bullet points and action items.
Focus on decisions made, follow-up tasks, and key discussion points.
Write in formal tone:

Transcript:
"""
%s
"""`, transcript)

	content, err := g.chat(ctx, []map[string]string{
		{"role": "system", "content": "You are a helpful meeting assistant."},
		{"role": "user", "content": prompt},
	}, 0.3, 800)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// ClassifyMeeting extracts organizational taxonomy from a transcript. The raw
// assistant content is returned for the caller to parse strictly.
func (g *GroqClient) ClassifyMeeting(ctx context.Context, transcript string, participantLabels []string) (string, error) {
	userPrompt := fmt.Sprintf("**Transcript:**\n\"%s\"\n\n**Participants:**\n%s",
		transcript, strings.Join(participantLabels, ", "))

	return g.chat(ctx, []map[string]string{
		{"role": "system", "content": classifySystemPrompt},
		{"role": "user", "content": userPrompt},
	}, 0, 500)
}

// CreateEmbedding returns the embedding vector for the given text
func (g *GroqClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	b, err := json.Marshal(EmbeddingRequest{Model: g.embeddingModel, Input: text})
	if err != nil {
		return nil, err
	}

	endpoint := g.baseURL + "/openai/v1/embeddings"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var er EmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, err
	}
	if len(er.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response from groq")
	}
	return er.Data[0].Embedding, nil
}

func (g *GroqClient) chat(ctx context.Context, messages []map[string]string, temperature float64, maxTokens int) (string, error) {
	b, err := json.Marshal(ChatRequest{
		Model:       g.chatModel,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
