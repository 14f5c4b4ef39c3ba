package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// VersionService manages the style guide's semantic version and its
// append-only history.
type VersionService struct {
	db        *gorm.DB
	activeSvc *ActiveSelectionService
}

func NewVersionService(db *gorm.DB) *VersionService {
	return &VersionService{db: db, activeSvc: NewActiveSelectionService(db)}
}

type CreateVersionRequest struct {
	Changes string `json:"changes" binding:"required"`
}

// List returns the version history, newest first.
func (s *VersionService) List() ([]models.VersionHistory, error) {
	var entries []models.VersionHistory
	if err := s.db.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateVersion bumps the style guide's patch version, snapshots the config
// and appends a history entry. The history insert and the config update
// happen in one transaction so the version string and its history never
// drift apart.
func (s *VersionService) CreateVersion(req *CreateVersionRequest, actor string) (*models.VersionHistory, error) {
	if strings.TrimSpace(req.Changes) == "" {
		return nil, response.NewBadRequest("changes description is required")
	}

	cfg, err := s.activeSvc.GetRegister()
	if err != nil {
		return nil, err
	}

	next, err := bumpPatch(cfg.Version)
	if err != nil {
		return nil, response.NewBadRequest(fmt.Sprintf("stored version %q is not valid semver: %v", cfg.Version, err))
	}

	snapshot, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	entry := models.VersionHistory{
		ConfigID:  cfg.ID,
		Version:   next,
		Changes:   strings.TrimSpace(req.Changes),
		Snapshot:  string(snapshot),
		CreatedBy: actor,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.StyleGuideConfig{}).
			Where("id = ?", cfg.ID).
			Update("version", next).Error
	})
	if err != nil {
		return nil, err
	}

	PublishChange("styleGuide", ActionUpdate, map[string]interface{}{
		"version": next,
		"changes": entry.Changes,
	}, actor)

	return &entry, nil
}

// bumpPatch parses a strict MAJOR.MINOR.PATCH version and increments the
// patch component. Anything other than three non-negative integers joined
// by dots is rejected.
func bumpPatch(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("expected MAJOR.MINOR.PATCH, got %d components", len(parts))
	}

	nums := make([]int, 3)
	for i, p := range parts {
		if p == "" || (len(p) > 1 && p[0] == '0') {
			return "", fmt.Errorf("component %q is not a canonical number", p)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", fmt.Errorf("component %q is not a non-negative integer", p)
		}
		nums[i] = n
	}

	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]+1), nil
}
