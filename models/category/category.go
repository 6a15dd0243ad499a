package category

import "time"

// Category groups salon services for browsing (hair, skin, nails, bridal, ...).
type Category struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null;unique" json:"name"`
	Slug        string  `gorm:"type:varchar(120);not null;unique;index" json:"slug"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	ImageURL    *string `gorm:"type:varchar(2048)" json:"image_url,omitempty"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`

	CreatedBy string     `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
