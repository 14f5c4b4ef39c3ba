package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

type SystemLogHandler struct {
	service *services.SystemLogService
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return &SystemLogHandler{service: services.NewSystemLogService(db)}
}

// List returns paginated system logs with filters.
// GET /api/system-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	logs, err := h.service.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}

// GetModules returns the distinct module names seen in the logs.
// GET /api/system-logs/modules
func (h *SystemLogHandler) GetModules(c *gin.Context) {
	modules, err := h.service.GetModules()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, modules)
}
