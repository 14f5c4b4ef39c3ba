package services

import (
	"errors"
	"fmt"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// FeedbackService manages feedback submissions and their comment threads.
type FeedbackService struct {
	db     *gorm.DB
	events *EventHub
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db, events: GetEventHub()}
}

type CreateFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
	Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Page    string `json:"page"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open resolved dismissed"`
}

type AddCommentRequest struct {
	Message string `json:"message" binding:"required"`
}

// List returns feedback entries with comments preloaded, optionally
// filtered by status.
func (s *FeedbackService) List(status string) ([]models.Feedback, error) {
	query := s.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var entries []models.Feedback
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FeedbackService) GetByID(id uint) (*models.Feedback, error) {
	var entry models.Feedback
	err := s.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("feedback %d not found", id))
		}
		return nil, err
	}
	return &entry, nil
}

func (s *FeedbackService) Create(req *CreateFeedbackRequest, actor string) (*models.Feedback, error) {
	entry := models.Feedback{
		Message:   req.Message,
		Rating:    req.Rating,
		Page:      req.Page,
		Status:    "open",
		CreatedBy: actor,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: "feedback", Action: ActionAdd, Payload: entry, Actor: actor})
	return &entry, nil
}

// UpdateStatus moves a feedback entry between open, resolved and dismissed.
func (s *FeedbackService) UpdateStatus(id uint, req *UpdateFeedbackStatusRequest, actor string) (*models.Feedback, error) {
	entry, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(entry).Update("status", req.Status).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: "feedback", Action: ActionUpdate, Payload: entry, Actor: actor})
	return entry, nil
}

func (s *FeedbackService) Delete(id uint, actor string) error {
	entry, err := s.GetByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_id = ?", id).Delete(&models.FeedbackComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Feedback{}, id).Error
	})
	if err != nil {
		return err
	}

	s.events.Publish(ChangeEvent{Category: "feedback", Action: ActionRemove, Payload: entry, Actor: actor})
	return nil
}

// AddComment appends a reply to a feedback thread.
func (s *FeedbackService) AddComment(feedbackID uint, req *AddCommentRequest, actor string) (*models.FeedbackComment, error) {
	if _, err := s.GetByID(feedbackID); err != nil {
		return nil, err
	}

	comment := models.FeedbackComment{
		FeedbackID: feedbackID,
		Message:    req.Message,
		CreatedBy:  actor,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: "feedback", Action: ActionComment, Payload: comment, Actor: actor})
	return &comment, nil
}
