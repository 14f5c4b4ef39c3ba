package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/middleware"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

type ComponentHandler struct {
	service *services.ComponentService
}

func NewComponentHandler(db *gorm.DB) *ComponentHandler {
	return &ComponentHandler{service: services.NewComponentService(db)}
}

// List returns component specs, optionally filtered by ?group=.
// GET /api/components
func (h *ComponentHandler) List(c *gin.Context) {
	components, err := h.service.List(c.Query("group"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, components)
}

// Groups returns the distinct component groups.
// GET /api/components/groups
func (h *ComponentHandler) Groups(c *gin.Context) {
	groups, err := h.service.Groups()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, groups)
}

// Get returns one component spec.
// GET /api/components/:id
func (h *ComponentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	component, err := h.service.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, component)
}

// POST /api/components
func (h *ComponentHandler) Create(c *gin.Context) {
	var req services.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	component, err := h.service.Create(&req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, component)
}

// PUT /api/components/:id
func (h *ComponentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	component, err := h.service.Update(id, &req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, component)
}

// DELETE /api/components/:id
func (h *ComponentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id, middleware.GetUsername(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
