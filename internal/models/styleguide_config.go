package models

import "time"

// StyleGuideConfig is the single shared configuration row. It carries the
// per-category active token references and the semantic version of the
// whole style guide. There is exactly one row; it is created by seeding
// and never deleted.
type StyleGuideConfig struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"size:200;default:Default Style Guide" json:"name"`
	Version              string    `gorm:"size:20;default:1.0.0" json:"version"`
	ActiveColorSchemeID  *uint     `json:"active_color_scheme_id"`
	ActiveTypographyID   *uint     `json:"active_typography_id"`
	ActiveSpacingID      *uint     `json:"active_spacing_id"`
	ActiveBorderRadiusID *uint     `json:"active_border_radius_id"`
	ActiveShadowID       *uint     `json:"active_shadow_id"`
	ActiveAnimationID    *uint     `json:"active_animation_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (StyleGuideConfig) TableName() string { return "style_guide_configs" }

// ActiveID returns the active token id for the given category, or nil.
func (c *StyleGuideConfig) ActiveID(cat Category) *uint {
	switch cat.Key {
	case CategoryColorScheme.Key:
		return c.ActiveColorSchemeID
	case CategoryTypography.Key:
		return c.ActiveTypographyID
	case CategorySpacing.Key:
		return c.ActiveSpacingID
	case CategoryBorderRadius.Key:
		return c.ActiveBorderRadiusID
	case CategoryShadow.Key:
		return c.ActiveShadowID
	case CategoryAnimation.Key:
		return c.ActiveAnimationID
	}
	return nil
}

// SetActiveID sets the active token id for the given category in memory.
func (c *StyleGuideConfig) SetActiveID(cat Category, id *uint) {
	switch cat.Key {
	case CategoryColorScheme.Key:
		c.ActiveColorSchemeID = id
	case CategoryTypography.Key:
		c.ActiveTypographyID = id
	case CategorySpacing.Key:
		c.ActiveSpacingID = id
	case CategoryBorderRadius.Key:
		c.ActiveBorderRadiusID = id
	case CategoryShadow.Key:
		c.ActiveShadowID = id
	case CategoryAnimation.Key:
		c.ActiveAnimationID = id
	}
}
