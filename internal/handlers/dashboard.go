package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{service: services.NewDashboardService(db)}
}

// GetStats returns the dashboard overview.
// GET /api/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
