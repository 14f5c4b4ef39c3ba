package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/styledesk/styledesk/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the token tables,
// the config row and the version history migrated, and seeds the single
// style guide config row at version 1.0.0.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Each test gets its own named in-memory database; shared cache keeps
	// all pool connections on the same instance.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&models.StyleGuideConfig{}, &models.VersionHistory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, cat := range models.TokenCategories {
		if err := db.Table(cat.Table).AutoMigrate(&models.DesignToken{}); err != nil {
			t.Fatalf("migrate %s: %v", cat.Table, err)
		}
	}

	cfg := models.StyleGuideConfig{Name: "Test Style Guide", Version: "1.0.0"}
	if err := db.Create(&cfg).Error; err != nil {
		t.Fatalf("seed config: %v", err)
	}

	return db
}
