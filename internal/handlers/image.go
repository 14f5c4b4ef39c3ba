package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/middleware"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

type ImageHandler struct {
	service *services.ImageService
}

func NewImageHandler(db *gorm.DB) *ImageHandler {
	return &ImageHandler{service: services.NewImageService(db)}
}

// List returns image assets, optionally filtered by ?tag=.
// GET /api/images
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.service.List(c.Query("tag"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, images)
}

// GET /api/images/:id
func (h *ImageHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	image, err := h.service.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, image)
}

// POST /api/images
func (h *ImageHandler) Create(c *gin.Context) {
	var req services.CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	image, err := h.service.Create(&req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, image)
}

// PUT /api/images/:id
func (h *ImageHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	image, err := h.service.Update(id, &req, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, image)
}

// DELETE /api/images/:id
func (h *ImageHandler) Delete(c *gin.Context) {
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
