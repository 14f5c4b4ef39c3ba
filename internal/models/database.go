package models

import (
	"fmt"

	"github.com/styledesk/styledesk/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	if err := DB.AutoMigrate(
		&User{},
		&StyleGuideConfig{},
		&VersionHistory{},
		&ComponentSpec{},
		&ImageAsset{},
		&Feedback{},
		&FeedbackComment{},
		&SystemLog{},
	); err != nil {
		return err
	}

	// Token categories share one record shape across six tables.
	for _, cat := range TokenCategories {
		if err := DB.Table(cat.Table).AutoMigrate(&DesignToken{}); err != nil {
			return fmt.Errorf("migrate %s: %w", cat.Table, err)
		}
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates the style guide config row and one starter token
// per category when the database is empty.
func SeedDefaultData() error {
	var configCount int64
	DB.Model(&StyleGuideConfig{}).Count(&configCount)
	if configCount == 0 {
		cfg := StyleGuideConfig{
			Name:    "Default Style Guide",
			Version: "1.0.0",
		}
		if err := DB.Create(&cfg).Error; err != nil {
			return err
		}
	}

	defaults := map[string]DesignToken{
		CategoryColorScheme.Key: {
			Name: "Default Palette",
			Scale: StringMap{
				"primary":    "#2563eb",
				"secondary":  "#64748b",
				"background": "#ffffff",
				"surface":    "#f8fafc",
				"error":      "#dc2626",
			},
		},
		CategoryTypography.Key: {
			Name: "Default Type Scale",
			Scale: StringMap{
				"font-family": "Inter, sans-serif",
				"base":        "1rem",
				"lg":          "1.125rem",
				"xl":          "1.25rem",
				"2xl":         "1.5rem",
			},
		},
		CategorySpacing.Key: {
			Name: "Default Scale",
			Scale: StringMap{
				"1": "0.25rem",
				"2": "0.5rem",
				"4": "1rem",
				"8": "2rem",
			},
		},
		CategoryBorderRadius.Key: {
			Name: "Default Radii",
			Scale: StringMap{
				"none": "0",
				"sm":   "0.125rem",
				"md":   "0.375rem",
				"full": "9999px",
			},
		},
		CategoryShadow.Key: {
			Name: "Default Shadows",
			Scale: StringMap{
				"sm": "0 1px 2px 0 rgb(0 0 0 / 0.05)",
				"md": "0 4px 6px -1px rgb(0 0 0 / 0.1)",
				"lg": "0 10px 15px -3px rgb(0 0 0 / 0.1)",
			},
		},
		CategoryAnimation.Key: {
			Name: "Default Motion",
			Scale: StringMap{
				"duration-fast": "150ms",
				"duration-slow": "300ms",
				"ease":          "cubic-bezier(0.4, 0, 0.2, 1)",
			},
		},
	}

	for _, cat := range TokenCategories {
		var count int64
		DB.Table(cat.Table).Count(&count)
		if count > 0 {
			continue
		}
		token := defaults[cat.Key]
		token.Version = 1
		token.CreatedBy = "system"
		if err := DB.Table(cat.Table).Create(&token).Error; err != nil {
			return err
		}
	}

	return nil
}
