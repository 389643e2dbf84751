package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	webhookHandler  *Webhook
	meetingHandler  *Meeting
	trainingHandler *Training
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, webhook *Webhook, meeting *Meeting, training *Training) *Router {
	return &Router{
		cfg:             cfg,
		webhookHandler:  webhook,
		meetingHandler:  meeting,
		trainingHandler: training,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	v1.POST("/webhooks/recordings", rt.webhookHandler.Receive)

	meetings := v1.Group("/meetings")
	meetings.GET("", rt.meetingHandler.List)
	meetings.GET("/search", rt.meetingHandler.Search)
	meetings.GET("/:id", rt.meetingHandler.Get)

	queue := v1.Group("/training-queue")
	queue.GET("", rt.trainingHandler.List)
	queue.PATCH("/:id", rt.trainingHandler.UpdateStatus)
}

// healthCheck responds with basic service status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
