package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/internal/services"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// SSE connections
	sseClients := services.GetEventHub().ClientCount()

	// Open feedback count
	var openFeedback int64
	models.GetDB().Model(&models.Feedback{}).
		Where("status = ?", "open").
		Count(&openFeedback)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "styledesk",
		"components": gin.H{
			"database":      dbStatus,
			"queue_mode":    queueMode,
			"sse_clients":   sseClients,
			"open_feedback": openFeedback,
		},
	})
}
