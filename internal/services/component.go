package services

import (
	"errors"
	"fmt"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// ComponentService manages reusable component specifications.
type ComponentService struct {
	db     *gorm.DB
	events *EventHub
}

func NewComponentService(db *gorm.DB) *ComponentService {
	return &ComponentService{db: db, events: GetEventHub()}
}

type CreateComponentRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Group       string           `json:"group"`
	Props       models.StringMap `json:"props"`
	Code        string           `json:"code"`
}

type UpdateComponentRequest struct {
	Name            string           `json:"name"`
	Description     *string          `json:"description"`
	Group           *string          `json:"group"`
	Props           models.StringMap `json:"props"`
	Code            *string          `json:"code"`
	ExpectedVersion int              `json:"expected_version" binding:"required,min=1"`
}

// List returns component specs, optionally filtered by group.
func (s *ComponentService) List(group string) ([]models.ComponentSpec, error) {
	query := s.db.Order("component_group ASC, name ASC")
	if group != "" {
		query = query.Where("component_group = ?", group)
	}

	var components []models.ComponentSpec
	if err := query.Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

func (s *ComponentService) GetByID(id uint) (*models.ComponentSpec, error) {
	var component models.ComponentSpec
	if err := s.db.First(&component, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("component %d not found", id))
		}
		return nil, err
	}
	return &component, nil
}

func (s *ComponentService) Create(req *CreateComponentRequest, actor string) (*models.ComponentSpec, error) {
	if req.Props == nil {
		req.Props = models.StringMap{}
	}

	component := models.ComponentSpec{
		Name:        req.Name,
		Description: req.Description,
		Group:       req.Group,
		Props:       req.Props,
		Code:        req.Code,
		Version:     1,
		CreatedBy:   actor,
	}

	if err := s.db.Create(&component).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: "component", Action: ActionAdd, Payload: component, Actor: actor})
	return &component, nil
}

// Update is guarded by the same optimistic version check as design tokens.
func (s *ComponentService) Update(id uint, req *UpdateComponentRequest, actor string) (*models.ComponentSpec, error) {
	updates := map[string]interface{}{
		"version": req.ExpectedVersion + 1,
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Group != nil {
		updates["component_group"] = *req.Group
	}
	if req.Props != nil {
		updates["props"] = req.Props
	}
	if req.Code != nil {
		updates["code"] = *req.Code
	}

	result := s.db.Model(&models.ComponentSpec{}).
		Where("id = ? AND version = ?", id, req.ExpectedVersion).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		current, err := s.GetByID(id)
		if err != nil {
			return nil, err
		}
		return nil, response.NewConflict(fmt.Sprintf(
			"component %q was modified by another editor (stored version %d, expected %d)",
			current.Name, current.Version, req.ExpectedVersion))
	}

	component, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: "component", Action: ActionUpdate, Payload: component, Actor: actor})
	return component, nil
}

func (s *ComponentService) Delete(id uint, actor string) error {
	component, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.ComponentSpec{}, id).Error; err != nil {
		return err
	}

	s.events.Publish(ChangeEvent{Category: "component", Action: ActionRemove, Payload: component, Actor: actor})
	return nil
}

// Groups returns the distinct component groups in use.
func (s *ComponentService) Groups() ([]string, error) {
	var groups []string
	err := s.db.Model(&models.ComponentSpec{}).
		Where("component_group <> ''").
		Distinct("component_group").
		Order("component_group ASC").
		Pluck("component_group", &groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
