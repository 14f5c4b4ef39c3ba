package models

import (
	"time"

	"gorm.io/gorm"
)

// ImageAsset is metadata for an image referenced by the style guide.
// Only the reference is stored; file bytes live in external storage.
type ImageAsset struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	URL       string         `gorm:"size:1000;not null" json:"url"`
	AltText   string         `gorm:"size:500" json:"alt_text"`
	Tags      string         `gorm:"size:500" json:"tags"` // comma-separated
	CreatedBy string         `gorm:"size:100" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ImageAsset) TableName() string { return "image_assets" }
