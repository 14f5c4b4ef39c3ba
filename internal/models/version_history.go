package models

import "time"

// VersionHistory is an append-only record of explicit style guide version
// bumps. Snapshot holds a JSON copy of the config at the time of the bump.
// Rows are never mutated or deleted.
type VersionHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ConfigID  uint      `gorm:"index;not null" json:"config_id"`
	Version   string    `gorm:"size:20;not null" json:"version"`
	Changes   string    `gorm:"type:text;not null" json:"changes"`
	Snapshot  string    `gorm:"type:text" json:"snapshot"`
	CreatedBy string    `gorm:"size:100" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (VersionHistory) TableName() string { return "version_histories" }
