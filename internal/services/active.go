package services

import (
	"errors"
	"fmt"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// ActiveSelectionService maintains the one-active-token-per-category
// invariant on the shared style guide config row. All writes are
// confirmed against the database before any state is reported back,
// so a failed persist never leaves a phantom active marker.
type ActiveSelectionService struct {
	db     *gorm.DB
	events *EventHub
}

func NewActiveSelectionService(db *gorm.DB) *ActiveSelectionService {
	return &ActiveSelectionService{db: db, events: GetEventHub()}
}

// GetRegister loads the config row and re-validates every active
// reference against its token table. Stale references (the token was
// deleted out from under the register) are cleared and the cleared state
// is persisted, so callers never see a dangling id.
func (s *ActiveSelectionService) GetRegister() (*models.StyleGuideConfig, error) {
	var cfg models.StyleGuideConfig
	if err := s.db.Order("id ASC").First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("style guide config not found")
		}
		return nil, err
	}

	stale := map[string]interface{}{}
	for _, cat := range models.TokenCategories {
		id := cfg.ActiveID(cat)
		if id == nil {
			continue
		}
		var count int64
		if err := s.db.Table(cat.Table).Where("id = ? AND deleted_at IS NULL", *id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			stale[cat.ActiveColumn] = nil
			cfg.SetActiveID(cat, nil)
		}
	}

	if len(stale) > 0 {
		if err := s.db.Model(&models.StyleGuideConfig{}).Where("id = ?", cfg.ID).Updates(stale).Error; err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// SetActive points the category's register field at the given token id.
// The token must exist; the register row is persisted before the change
// is announced.
func (s *ActiveSelectionService) SetActive(cat models.Category, id uint, actor string) error {
	var count int64
	if err := s.db.Table(cat.Table).Where("id = ? AND deleted_at IS NULL", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return response.NewNotFound(fmt.Sprintf("%s %d not found", cat.Label, id))
	}

	cfg, err := s.GetRegister()
	if err != nil {
		return err
	}

	if err := s.db.Model(&models.StyleGuideConfig{}).
		Where("id = ?", cfg.ID).
		Update(cat.ActiveColumn, id).Error; err != nil {
		return err
	}

	s.events.Publish(ChangeEvent{
		Category: cat.Key,
		Action:   ActionSetActive,
		Payload:  map[string]interface{}{"id": id},
		Actor:    actor,
	})
	return nil
}

// ClearActive resets the category's register field to null. Used when the
// currently active token is deleted.
func (s *ActiveSelectionService) ClearActive(cat models.Category, actor string) error {
	cfg, err := s.GetRegister()
	if err != nil {
		return err
	}

	if err := s.db.Model(&models.StyleGuideConfig{}).
		Where("id = ?", cfg.ID).
		Update(cat.ActiveColumn, nil).Error; err != nil {
		return err
	}

	s.events.Publish(ChangeEvent{
		Category: cat.Key,
		Action:   ActionSetActive,
		Payload:  map[string]interface{}{"id": nil},
		Actor:    actor,
	})
	return nil
}

// RevalidateAll sweeps the register once, clearing references to deleted
// tokens. Run from the maintenance scheduler.
func (s *ActiveSelectionService) RevalidateAll() error {
	_, err := s.GetRegister()
	return err
}
