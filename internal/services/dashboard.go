package services

import (
	"time"

	"github.com/styledesk/styledesk/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db        *gorm.DB
	activeSvc *ActiveSelectionService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, activeSvc: NewActiveSelectionService(db)}
}

// CategoryStats is the dashboard tile for one token category.
type CategoryStats struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	TokenCount int64  `json:"token_count"`
	ActiveID   *uint  `json:"active_id"`
	ActiveName string `json:"active_name,omitempty"`
}

type DashboardStats struct {
	StyleGuideVersion string `json:"style_guide_version"`
	ComponentCount    int64  `json:"component_count"`
	ImageCount        int64  `json:"image_count"`
	OpenFeedbackCount int64  `json:"open_feedback_count"`
	ChangesThisWeek   int64  `json:"changes_this_week"`
}

type DashboardResponse struct {
	Stats          DashboardStats          `json:"stats"`
	Categories     []CategoryStats         `json:"categories"`
	RecentVersions []models.VersionHistory `json:"recent_versions"`
}

// GetStats assembles the dashboard overview: per-category token counts
// with their active selections, global counters and the latest version
// bumps.
func (s *DashboardService) GetStats() (*DashboardResponse, error) {
	register, err := s.activeSvc.GetRegister()
	if err != nil {
		return nil, err
	}

	categories := make([]CategoryStats, 0, len(models.TokenCategories))
	for _, cat := range models.TokenCategories {
		stat := CategoryStats{
			Key:      cat.Key,
			Label:    cat.Label,
			ActiveID: register.ActiveID(cat),
		}

		s.db.Table(cat.Table).Where("deleted_at IS NULL").Count(&stat.TokenCount)

		if stat.ActiveID != nil {
			var token models.DesignToken
			if err := s.db.Table(cat.Table).First(&token, *stat.ActiveID).Error; err == nil {
				stat.ActiveName = token.Name
			}
		}

		categories = append(categories, stat)
	}

	stats := DashboardStats{StyleGuideVersion: register.Version}

	s.db.Model(&models.ComponentSpec{}).Count(&stats.ComponentCount)
	s.db.Model(&models.ImageAsset{}).Count(&stats.ImageCount)
	s.db.Model(&models.Feedback{}).Where("status = ?", "open").Count(&stats.OpenFeedbackCount)

	weekAgo := time.Now().AddDate(0, 0, -7)
	s.db.Model(&models.SystemLog{}).
		Where("created_at >= ? AND extra LIKE ?", weekAgo, `%"audit":true%`).
		Count(&stats.ChangesThisWeek)

	var recentVersions []models.VersionHistory
	if err := s.db.Order("created_at DESC, id DESC").Limit(5).Find(&recentVersions).Error; err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Stats:          stats,
		Categories:     categories,
		RecentVersions: recentVersions,
	}, nil
}
