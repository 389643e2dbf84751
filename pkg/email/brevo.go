package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

// BrevoClient is a minimal client for the Brevo transactional email API
type BrevoClient struct {
	apiKey    string
	baseURL   string
	fromName  string
	fromEmail string
	client    *http.Client
}

// NewBrevoClient creates a Brevo client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewBrevoClient(cfg *config.EmailConfig) *BrevoClient {
	var apiKey, base, fromName, fromEmail string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		fromName = cfg.FromName
		fromEmail = cfg.FromEmail
	}
	if apiKey == "" {
		apiKey = os.Getenv("BREVO_API_KEY")
	}
	if base == "" {
		base = "https://api.brevo.com"
	}
	if fromName == "" {
		fromName = "Universal Meeting Assistant"
	}
	if fromEmail == "" {
		fromEmail = "no-reply@yourdomain.com"
	}

	return &BrevoClient{
		apiKey:    apiKey,
		baseURL:   base,
		fromName:  fromName,
		fromEmail: fromEmail,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Recipient identifies an email destination
type Recipient struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// sendRequest is the Brevo /v3/smtp/email payload shape
type sendRequest struct {
	Sender      Recipient   `json:"sender"`
	To          []Recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

// SummaryEmail carries the content for a meeting summary notification
type SummaryEmail struct {
	Subject      string
	Summary      string
	Transcript   string
	RecordingURL string
}

// SendSummary delivers the meeting summary to one recipient. Brevo answers
// 201 on acceptance.
func (b *BrevoClient) SendSummary(ctx context.Context, to Recipient, msg SummaryEmail) error {
	name := to.Name
	if name == "" {
		name = "Participant"
	}

	var sb strings.Builder
	sb.WriteString(`<html><body style="font-family: Arial, sans-serif; background-color: #f9f9f9; color: #333;">`)
	sb.WriteString(`<div style="max-width: 600px; margin: auto; background: #ffffff; padding: 20px; border-radius: 8px;">`)
	fmt.Fprintf(&sb, "<p>Hello %s,</p><h3>Meeting Summary</h3>", html.EscapeString(name))
	fmt.Fprintf(&sb, `<p><strong>Summary:</strong></p><pre style="background:#f5f5f5; padding:10px; white-space:pre-wrap;">%s</pre>`,
		html.EscapeString(msg.Summary))
	if msg.Transcript != "" {
		fmt.Fprintf(&sb, `<p><strong>Transcript:</strong></p><pre style="background:#f5f5f5; padding:10px; white-space:pre-wrap;">%s</pre>`,
			html.EscapeString(msg.Transcript))
	}
	if msg.RecordingURL != "" {
		fmt.Fprintf(&sb, `<p><a href="%s">View Recording</a></p>`, msg.RecordingURL)
	}
	sb.WriteString("<p>Thanks,<br>The Universal Meeting Assistant Team</p></div></body></html>")

	payload := sendRequest{
		Sender:      Recipient{Name: b.fromName, Email: b.fromEmail},
		To:          []Recipient{{Name: name, Email: to.Email}},
		Subject:     msg.Subject,
		HTMLContent: sb.String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", b.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Api-Key", b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("brevo returned status %d", resp.StatusCode)
	}
	return nil
}
