package banner

import "time"

// Banner is a promotional image shown on the customer-facing home page.
type Banner struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string  `gorm:"type:varchar(255);not null" json:"title"`
	ImageURL  string  `gorm:"type:varchar(2048);not null" json:"image_url"`
	LinkURL   *string `gorm:"type:varchar(2048)" json:"link_url,omitempty"`
	IsActive  bool    `gorm:"default:true" json:"is_active"`
	SortOrder int     `gorm:"default:0" json:"sort_order"`

	CreatedBy string     `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
