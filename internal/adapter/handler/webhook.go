package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/ecstasyholdings/meeting-brain/errors"
	"github.com/ecstasyholdings/meeting-brain/internal/usecase/pipeline"
	"github.com/ecstasyholdings/meeting-brain/pkg/ai"
	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

// Recognized completion event names. Providers have shipped both spellings.
const (
	eventURLValidation      = "endpoint.url_validation"
	eventRecordingCompleted = "recording.completed"
	eventMeetingRecorded    = "meeting.recording_completed"
)

// webhookEnvelope is the outer shape of every inbound event
type webhookEnvelope struct {
	Event         string          `json:"event"`
	Payload       json.RawMessage `json:"payload"`
	DownloadToken string          `json:"download_token"`
}

type validationPayload struct {
	PlainToken string `json:"plainToken"`
}

type completionPayload struct {
	Object struct {
		ID             json.Number `json:"id"`
		HostEmail      string      `json:"host_email"`
		StartTime      string      `json:"start_time"`
		RecordingFiles []struct {
			ID          string `json:"id"`
			FileType    string `json:"file_type"`
			DownloadURL string `json:"download_url"`
		} `json:"recording_files"`
	} `json:"object"`
}

// Webhook receives recording notifications from the meeting platform
type Webhook struct {
	pipeline pipeline.Service
	secret   string
	logger   *zap.Logger
}

// NewWebhook creates the webhook handler
func NewWebhook(svc pipeline.Service, cfg *config.Config, logger *zap.Logger) *Webhook {
	return &Webhook{
		pipeline: svc,
		secret:   cfg.Webhook.SharedSecret,
		logger:   logger,
	}
}

// Receive handles POST /v1/webhooks/recordings. Validation handshakes are
// answered inline; completion events run the pipeline synchronously; anything
// else is acknowledged as ignored so the source stops retrying.
func (h *Webhook) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrMalformedEvent(err))
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return HandleError(h.logger, c, apperrors.ErrMalformedEvent(err))
	}

	switch envelope.Event {
	case eventURLValidation:
		return h.handshake(c, envelope)
	case eventRecordingCompleted, eventMeetingRecorded:
		return h.completion(c, envelope)
	default:
		h.logger.Info("ignoring webhook event", zap.String("event", envelope.Event))
		return c.JSON(http.StatusOK, map[string]string{"status": "ignored"})
	}
}

func (h *Webhook) handshake(c echo.Context, envelope webhookEnvelope) error {
	var payload validationPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil || payload.PlainToken == "" {
		return HandleError(h.logger, c, apperrors.ErrMissingEventField("plainToken"))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"plainToken":     payload.PlainToken,
		"encryptedToken": ai.EncryptToken(h.secret, payload.PlainToken),
	})
}

func (h *Webhook) completion(c echo.Context, envelope webhookEnvelope) error {
	var payload completionPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		return HandleError(h.logger, c, apperrors.ErrMissingEventField("payload.object"))
	}
	meetingID := payload.Object.ID.String()
	if meetingID == "" {
		return HandleError(h.logger, c, apperrors.ErrMissingEventField("payload.object.id"))
	}

	n := &pipeline.RecordingNotification{
		MeetingID:     meetingID,
		HostEmail:     payload.Object.HostEmail,
		DownloadToken: envelope.DownloadToken,
	}
	if t, err := time.Parse(time.RFC3339, payload.Object.StartTime); err == nil {
		n.StartTime = t
	}
	for _, f := range payload.Object.RecordingFiles {
		n.Files = append(n.Files, pipeline.RecordingFile{
			ID:          f.ID,
			FileType:    f.FileType,
			DownloadURL: f.DownloadURL,
		})
	}

	ack, err := h.pipeline.ProcessRecording(c.Request().Context(), n)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(ack)})
}
