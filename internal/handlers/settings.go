package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/middleware"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// SettingsHandler exposes the style guide config row and its version
// history.
type SettingsHandler struct {
	activeService  *services.ActiveSelectionService
	versionService *services.VersionService
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{
		activeService:  services.NewActiveSelectionService(db),
		versionService: services.NewVersionService(db),
	}
}

// GetConfig returns the style guide config with re-validated active
// references.
// GET /api/settings
func (h *SettingsHandler) GetConfig(c *gin.Context) {
	cfg, err := h.activeService.GetRegister()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cfg)
}

// ListVersions returns the version history, newest first.
// GET /api/settings/versions
func (h *SettingsHandler) ListVersions(c *gin.Context) {
	entries, err := h.versionService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

// CreateVersion bumps the patch version with a change description.
// POST /api/settings/versions
func (h *SettingsHandler) CreateVersion(c *gin.Context) {
	var req services.CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.versionService.CreateVersion(&req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}
