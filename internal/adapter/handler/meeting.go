package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/ecstasyholdings/meeting-brain/errors"
	"github.com/ecstasyholdings/meeting-brain/internal/adapter/dto/meeting"
	"github.com/ecstasyholdings/meeting-brain/internal/domain/repositories"
	"github.com/ecstasyholdings/meeting-brain/internal/infrastructure/search"
)

// QueryEmbedder embeds free-text search queries
type QueryEmbedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Searcher runs KNN queries against the meeting index
type Searcher interface {
	Search(ctx context.Context, vector []float32, k int) ([]search.SearchHit, error)
}

// Meeting serves the read API over processed meeting records
type Meeting struct {
	recordRepo repositories.MeetingRecordRepository
	embedder   QueryEmbedder
	searcher   Searcher
	logger     *zap.Logger
}

// NewMeeting creates the meeting read handler
func NewMeeting(recordRepo repositories.MeetingRecordRepository, embedder QueryEmbedder, searcher Searcher, logger *zap.Logger) *Meeting {
	return &Meeting{
		recordRepo: recordRepo,
		embedder:   embedder,
		searcher:   searcher,
		logger:     logger,
	}
}

// List handles GET /v1/meetings?limit=
func (h *Meeting) List(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("limit must be between 1 and 500"))
		}
		limit = n
	}

	records, err := h.recordRepo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list meetings", err))
	}

	out := make([]meeting.Summary, 0, len(records))
	for i := range records {
		out = append(out, meeting.NewSummary(&records[i]))
	}
	return HandleSuccess(h.logger, c, out)
}

// Get handles GET /v1/meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("meeting id is required"))
	}

	record, err := h.recordRepo.FindByMeetingID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("find meeting", err))
	}
	if record == nil {
		return HandleError(h.logger, c, apperrors.ErrNotFound("meeting"))
	}
	return HandleSuccess(h.logger, c, meeting.NewDetail(record))
}

// Search handles GET /v1/meetings/search?q=&k= by embedding the query and
// running a KNN lookup against the vector index
func (h *Meeting) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("q is required"))
	}

	k := 5
	if raw := c.QueryParam("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 50 {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("k must be between 1 and 50"))
		}
		k = n
	}

	ctx := c.Request().Context()
	vector, err := h.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrSearchFailed(err))
	}

	hits, err := h.searcher.Search(ctx, vector, k)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrSearchFailed(err))
	}
	return HandleSuccess(h.logger, c, hits)
}
