package statuscode

import "time"

// StatusCode is a display row for a booking status: label, color and
// ordering used by the dashboards. The transition rules themselves live in
// the booking package; this table only drives presentation.
type StatusCode struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string `gorm:"type:varchar(50);not null;unique" json:"code"`
	Label     string `gorm:"type:varchar(100);not null" json:"label"`
	Color     string `gorm:"type:varchar(20)" json:"color"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
