package models

import (
	"time"

	"gorm.io/gorm"
)

// ComponentSpec describes a reusable UI component: its props contract and
// an example code snippet shown in the style guide.
type ComponentSpec struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Group       string         `gorm:"column:component_group;size:100;index" json:"group"` // buttons, forms, layout, etc.
	Props       StringMap      `gorm:"type:text" json:"props"`
	Code        string         `gorm:"type:text" json:"code"`
	Version     int            `gorm:"not null;default:1" json:"version"`
	CreatedBy   string         `gorm:"size:100" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ComponentSpec) TableName() string { return "component_specs" }
