package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback is a user-submitted note about the design system.
type Feedback struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Rating    *int           `json:"rating"`                             // 1-5, optional
	Page      string         `gorm:"size:200" json:"page"`               // where it was left
	Status    string         `gorm:"size:20;default:open" json:"status"` // open, resolved, dismissed
	CreatedBy string         `gorm:"size:100" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Comments []FeedbackComment `gorm:"foreignKey:FeedbackID" json:"comments,omitempty"`
}

func (Feedback) TableName() string { return "feedbacks" }

// FeedbackComment is one reply in a feedback thread.
type FeedbackComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FeedbackID uint      `gorm:"index;not null" json:"feedback_id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	CreatedBy  string    `gorm:"size:100" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (FeedbackComment) TableName() string { return "feedback_comments" }
