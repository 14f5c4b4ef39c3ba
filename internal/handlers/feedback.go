package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/middleware"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

type FeedbackHandler struct {
	service *services.FeedbackService
}

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{service: services.NewFeedbackService(db)}
}

// List returns feedback entries, optionally filtered by ?status=.
// GET /api/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

// GET /api/feedback/:id
func (h *FeedbackHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.service.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// POST /api/feedback
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req services.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.service.Create(&req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// UpdateStatus moves an entry between open, resolved and dismissed.
// PUT /api/feedback/:id/status
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.service.UpdateStatus(id, &req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// DELETE /api/feedback/:id
func (h *FeedbackHandler) Delete(c *gin.Context) {
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

// AddComment appends a reply to a feedback thread.
// POST /api/feedback/:id/comments
func (h *FeedbackHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.service.AddComment(id, &req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}
