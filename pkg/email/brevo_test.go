package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

func TestSendSummary_Success(t *testing.T) {
	var gotPayload map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/smtp/email" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Api-Key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := NewBrevoClient(&config.EmailConfig{
		APIKey:    "test-key",
		BaseURL:   ts.URL,
		FromName:  "Universal Meeting Assistant",
		FromEmail: "no-reply@acme.com",
	})

	err := client.SendSummary(context.Background(),
		Recipient{Email: "host@acme.com"},
		SummaryEmail{Subject: "Summary for Meeting 42", Summary: "- Decided to ship"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPayload["subject"] != "Summary for Meeting 42" {
		t.Fatalf("unexpected subject %v", gotPayload["subject"])
	}
	html := gotPayload["htmlContent"].(string)
	if !strings.Contains(html, "- Decided to ship") {
		t.Fatalf("summary missing from html body")
	}
	// Empty recipient name falls back to a generic greeting
	if !strings.Contains(html, "Hello Participant,") {
		t.Fatalf("expected fallback greeting, got %q", html)
	}
	to := gotPayload["to"].([]interface{})[0].(map[string]interface{})
	if to["email"] != "host@acme.com" {
		t.Fatalf("unexpected recipient %v", to)
	}
}

func TestSendSummary_OptionalSections(t *testing.T) {
	var html string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		html = payload["htmlContent"].(string)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := NewBrevoClient(&config.EmailConfig{APIKey: "k", BaseURL: ts.URL})
	err := client.SendSummary(context.Background(),
		Recipient{Name: "Ana", Email: "ana@acme.com"},
		SummaryEmail{
			Subject:      "s",
			Summary:      "sum",
			Transcript:   "full transcript text",
			RecordingURL: "https://store.example/rec/1",
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "full transcript text") {
		t.Fatal("transcript section missing")
	}
	if !strings.Contains(html, "https://store.example/rec/1") {
		t.Fatal("recording link missing")
	}
}

func TestSendSummary_NonCreatedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewBrevoClient(&config.EmailConfig{APIKey: "k", BaseURL: ts.URL})
	err := client.SendSummary(context.Background(),
		Recipient{Email: "x@acme.com"}, SummaryEmail{Subject: "s", Summary: "sum"})
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
}
