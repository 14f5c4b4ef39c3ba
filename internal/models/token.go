package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringMap is a JSON-encoded string-to-string map column. Token scales
// accept arbitrary caller-defined keys, so no schema is enforced here.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringMap: %T", value)
	}
	if len(data) == 0 {
		*m = StringMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// DesignToken is the record shape shared by all six token categories.
// Each category lives in its own table; the service layer selects the
// table through a Category descriptor.
type DesignToken struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	Version   int            `gorm:"not null;default:1" json:"version"`
	Scale     StringMap      `gorm:"type:text" json:"scale"`
	CreatedBy string         `gorm:"size:100" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Category describes one design-token category: its event key, table,
// REST path segment and the register column holding its active token id.
type Category struct {
	Key          string // event/category key, e.g. "colorScheme"
	Table        string // database table, e.g. "color_schemes"
	Path         string // REST path segment, e.g. "color-schemes"
	Label        string // human-readable name
	ActiveColumn string // column on style_guide_configs
}

var (
	CategoryColorScheme  = Category{Key: "colorScheme", Table: "color_schemes", Path: "color-schemes", Label: "Color Scheme", ActiveColumn: "active_color_scheme_id"}
	CategoryTypography   = Category{Key: "typography", Table: "typographies", Path: "typographies", Label: "Typography", ActiveColumn: "active_typography_id"}
	CategorySpacing      = Category{Key: "spacing", Table: "spacings", Path: "spacings", Label: "Spacing", ActiveColumn: "active_spacing_id"}
	CategoryBorderRadius = Category{Key: "borderRadius", Table: "border_radiuses", Path: "border-radiuses", Label: "Border Radius", ActiveColumn: "active_border_radius_id"}
	CategoryShadow       = Category{Key: "shadow", Table: "shadows", Path: "shadows", Label: "Shadow", ActiveColumn: "active_shadow_id"}
	CategoryAnimation    = Category{Key: "animation", Table: "animations", Path: "animations", Label: "Animation", ActiveColumn: "active_animation_id"}
)

// TokenCategories lists every token category in registration order.
var TokenCategories = []Category{
	CategoryColorScheme,
	CategoryTypography,
	CategorySpacing,
	CategoryBorderRadius,
	CategoryShadow,
	CategoryAnimation,
}

// CategoryByKey resolves a category by its event key (case-sensitive).
func CategoryByKey(key string) (Category, bool) {
	for _, c := range TokenCategories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}
