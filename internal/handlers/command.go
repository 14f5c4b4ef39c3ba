package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/config"
	"github.com/styledesk/styledesk/internal/middleware"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// CommandHandler serves the command panel.
type CommandHandler struct {
	service *services.CommandService
}

func NewCommandHandler(db *gorm.DB, aiCfg *config.AIConfig) *CommandHandler {
	return &CommandHandler{service: services.NewCommandService(db, aiCfg)}
}

type executeCommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// Execute parses and runs a command line.
// POST /api/command
func (h *CommandHandler) Execute(c *gin.Context) {
	var req executeCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Execute(c.Request.Context(), req.Command, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Parse dry-runs the parser without executing, so the panel can preview
// what a command would do.
// POST /api/command/parse
func (h *CommandHandler) Parse(c *gin.Context) {
	var req executeCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cmd, err := services.ParseCommand(req.Command)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cmd)
}
