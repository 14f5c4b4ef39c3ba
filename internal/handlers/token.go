package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/middleware"
	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// TokenHandler serves the REST surface of one design-token category.
// The same handler type is registered once per category.
type TokenHandler struct {
	service *services.TokenService
}

func NewTokenHandler(db *gorm.DB, cat models.Category) *TokenHandler {
	return &TokenHandler{service: services.NewTokenService(db, cat)}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// List returns all tokens of the category plus the active selection.
// GET /api/<category>
func (h *TokenHandler) List(c *gin.Context) {
	list, err := h.service.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Get returns one token.
// GET /api/<category>/:id
func (h *TokenHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	token, err := h.service.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

// Create adds a new token.
// POST /api/<category>
func (h *TokenHandler) Create(c *gin.Context) {
	var req services.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Create(&req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, token)
}

// Update applies a version-guarded patch. A stale expected_version yields
// 409 Conflict.
// PUT /api/<category>/:id
func (h *TokenHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Update(id, &req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

// Delete removes a token, clearing the active reference if needed.
// DELETE /api/<category>/:id
func (h *TokenHandler) Delete(c *gin.Context) {
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

// Activate marks a token as the category's active selection.
// POST /api/<category>/:id/activate
func (h *TokenHandler) Activate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	token, err := h.service.SetActive(id, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

// GetActive returns the category's active token, or null.
// GET /api/<category>/active
func (h *TokenHandler) GetActive(c *gin.Context) {
	token, err := h.service.GetActive()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}
