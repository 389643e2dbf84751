package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/ecstasyholdings/meeting-brain/errors"
	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
	"github.com/ecstasyholdings/meeting-brain/internal/domain/repositories"
)

// updateStatusRequest is the review-decision payload
type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending_review reviewed dismissed"`
}

// Training serves the coaching review queue
type Training struct {
	queueRepo repositories.TrainingQueueRepository
	logger    *zap.Logger
}

// NewTraining creates the training queue handler
func NewTraining(queueRepo repositories.TrainingQueueRepository, logger *zap.Logger) *Training {
	return &Training{queueRepo: queueRepo, logger: logger}
}

// List handles GET /v1/training-queue?status=&limit=
func (h *Training) List(c echo.Context) error {
	status := entities.TrainingStatusPendingReview
	if raw := c.QueryParam("status"); raw != "" {
		status = entities.TrainingQueueStatus(raw)
		if !status.IsValid() {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("unknown status"))
		}
	}

	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("limit must be between 1 and 500"))
		}
		limit = n
	}

	entries, err := h.queueRepo.ListByStatus(c.Request().Context(), status, limit)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list training queue", err))
	}
	return HandleSuccess(h.logger, c, entries)
}

// UpdateStatus handles PATCH /v1/training-queue/:id
func (h *Training) UpdateStatus(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("entry id is required"))
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("status must be pending_review, reviewed, or dismissed"))
	}

	ctx := c.Request().Context()
	err := h.queueRepo.UpdateStatus(ctx, id, entities.TrainingQueueStatus(req.Status))
	if err != nil {
		if err == entities.ErrQueueEntryNotFound {
			return HandleError(h.logger, c, apperrors.ErrNotFound("training queue entry"))
		}
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("update training entry", err))
	}

	h.logger.Info("training entry status updated",
		zap.String("entry_id", id),
		zap.String("status", req.Status))
	return HandleSuccess(h.logger, c, map[string]string{"id": id, "status": req.Status})
}
