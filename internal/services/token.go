package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// TokenService is the repository for one design-token category. All six
// categories share the same record shape and behavior; the category
// descriptor selects the table and the register column.
type TokenService struct {
	db        *gorm.DB
	cat       models.Category
	activeSvc *ActiveSelectionService
	events    *EventHub
}

func NewTokenService(db *gorm.DB, cat models.Category) *TokenService {
	return &TokenService{
		db:        db,
		cat:       cat,
		activeSvc: NewActiveSelectionService(db),
		events:    GetEventHub(),
	}
}

// Category returns the category this service operates on.
func (s *TokenService) Category() models.Category {
	return s.cat
}

type CreateTokenRequest struct {
	Name  string           `json:"name" binding:"required"`
	Scale models.StringMap `json:"scale"`
}

type UpdateTokenRequest struct {
	Name            string           `json:"name"`
	Scale           models.StringMap `json:"scale"`
	ExpectedVersion int              `json:"expected_version" binding:"required,min=1"`
}

// TokenListResponse pairs the records with the currently active id so a
// single call renders a category page.
type TokenListResponse struct {
	Items    []models.DesignToken `json:"items"`
	ActiveID *uint                `json:"active_id"`
}

// List returns all records for the category ordered by name ascending,
// together with the category's active token id from the register.
func (s *TokenService) List() (*TokenListResponse, error) {
	var tokens []models.DesignToken
	if err := s.db.Table(s.cat.Table).Order("name ASC").Find(&tokens).Error; err != nil {
		return nil, err
	}

	register, err := s.activeSvc.GetRegister()
	if err != nil {
		return nil, err
	}

	return &TokenListResponse{
		Items:    tokens,
		ActiveID: register.ActiveID(s.cat),
	}, nil
}

// GetByID returns a single token record.
func (s *TokenService) GetByID(id uint) (*models.DesignToken, error) {
	var token models.DesignToken
	if err := s.db.Table(s.cat.Table).First(&token, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("%s %d not found", s.cat.Label, id))
		}
		return nil, err
	}
	return &token, nil
}

// Create persists a new token at version 1 and publishes an add event.
// Nothing is returned to the caller until the write is confirmed.
func (s *TokenService) Create(req *CreateTokenRequest, actor string) (*models.DesignToken, error) {
	if req.Name == "" {
		return nil, response.NewBadRequest("name is required")
	}
	if req.Scale == nil {
		req.Scale = models.StringMap{}
	}

	token := models.DesignToken{
		Name:      req.Name,
		Version:   1,
		Scale:     req.Scale,
		CreatedBy: actor,
	}

	if err := s.db.Table(s.cat.Table).Create(&token).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: s.cat.Key, Action: ActionAdd, Payload: token, Actor: actor})
	return &token, nil
}

// Update applies a patch guarded by an optimistic version check. The row
// is updated only when its stored version still equals ExpectedVersion;
// the version advances by exactly 1 in the same statement, so two editors
// racing from version N cannot both land on N+1.
func (s *TokenService) Update(id uint, req *UpdateTokenRequest, actor string) (*models.DesignToken, error) {
	// Map updates through Table() bypass the model schema, so the
	// timestamp has to be set explicitly.
	updates := map[string]interface{}{
		"version":    req.ExpectedVersion + 1,
		"updated_at": time.Now(),
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Scale != nil {
		updates["scale"] = req.Scale
	}

	result := s.db.Table(s.cat.Table).
		Where("id = ? AND version = ? AND deleted_at IS NULL", id, req.ExpectedVersion).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Either the record is gone or another editor bumped the version.
		var current models.DesignToken
		if err := s.db.Table(s.cat.Table).First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFound(fmt.Sprintf("%s %d not found", s.cat.Label, id))
			}
			return nil, err
		}
		return nil, response.NewConflict(fmt.Sprintf(
			"%s %q was modified by another editor (stored version %d, expected %d)",
			s.cat.Label, current.Name, current.Version, req.ExpectedVersion))
	}

	var token models.DesignToken
	if err := s.db.Table(s.cat.Table).First(&token, id).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ChangeEvent{Category: s.cat.Key, Action: ActionUpdate, Payload: token, Actor: actor})
	return &token, nil
}

// Delete removes a token. When the deleted record is the category's active
// selection, the register reference is cleared in the same operation.
func (s *TokenService) Delete(id uint, actor string) error {
	token, err := s.GetByID(id)
	if err != nil {
		return err
	}

	result := s.db.Table(s.cat.Table).Where("id = ?", id).Delete(&models.DesignToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound(fmt.Sprintf("%s %d not found", s.cat.Label, id))
	}

	register, err := s.activeSvc.GetRegister()
	if err == nil {
		if active := register.ActiveID(s.cat); active != nil && *active == id {
			if clearErr := s.activeSvc.ClearActive(s.cat, actor); clearErr != nil {
				return fmt.Errorf("token deleted but active reference not cleared: %w", clearErr)
			}
		}
	}

	s.events.Publish(ChangeEvent{Category: s.cat.Key, Action: ActionRemove, Payload: token, Actor: actor})
	return nil
}

// SetActive marks this token as the category's active selection.
func (s *TokenService) SetActive(id uint, actor string) (*models.DesignToken, error) {
	token, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.activeSvc.SetActive(s.cat, id, actor); err != nil {
		return nil, err
	}
	return token, nil
}

// GetActive resolves the category's active token, or nil when unselected.
func (s *TokenService) GetActive() (*models.DesignToken, error) {
	register, err := s.activeSvc.GetRegister()
	if err != nil {
		return nil, err
	}
	id := register.ActiveID(s.cat)
	if id == nil {
		return nil, nil
	}
	return s.GetByID(*id)
}
