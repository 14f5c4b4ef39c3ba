package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// ImageService manages image asset metadata.
type ImageService struct {
	db     *gorm.DB
	events *EventHub
}

func NewImageService(db *gorm.DB) *ImageService {
	return &ImageService{db: db, events: GetEventHub()}
}

type CreateImageRequest struct {
	Name    string `json:"name" binding:"required"`
	URL     string `json:"url" binding:"required"`
	AltText string `json:"alt_text"`
	Tags    string `json:"tags"`
}

type UpdateImageRequest struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	AltText *string `json:"alt_text"`
	Tags    *string `json:"tags"`
}

// List returns image assets, optionally filtered by a tag substring.
func (s *ImageService) List(tag string) ([]models.ImageAsset, error) {
	query := s.db.Order("created_at DESC")
	if tag != "" {
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}

	var images []models.ImageAsset
	if err := query.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ImageService) GetByID(id uint) (*models.ImageAsset, error) {
	var image models.ImageAsset
	if err := s.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("image %d not found", id))
		}
		return nil, err
	}
	return &image, nil
}

func (s *ImageService) Create(req *CreateImageRequest, actor string) (*models.ImageAsset, error) {
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") && !strings.HasPrefix(req.URL, "/") {
		return nil, response.NewBadRequest("url must be absolute or site-relative")
	}

	image := models.ImageAsset{
		Name:      req.Name,
		URL:       req.URL,
		AltText:   req.AltText,
		Tags:      req.Tags,
		CreatedBy: actor,
	}

	if err := s.db.Create(&image).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: "image", Action: ActionAdd, Payload: image, Actor: actor})
	return &image, nil
}

func (s *ImageService) Update(id uint, req *UpdateImageRequest, actor string) (*models.ImageAsset, error) {
	image, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.URL != "" {
		updates["url"] = req.URL
	}
	if req.AltText != nil {
		updates["alt_text"] = *req.AltText
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	if len(updates) > 0 {
		if err := s.db.Model(image).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.events.Publish(ChangeEvent{Category: "image", Action: ActionUpdate, Payload: image, Actor: actor})
	return image, nil
}

func (s *ImageService) Delete(id uint, actor string) error {
	image, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.ImageAsset{}, id).Error; err != nil {
		return err
	}

	s.events.Publish(ChangeEvent{Category: "image", Action: ActionRemove, Payload: image, Actor: actor})
	return nil
}
