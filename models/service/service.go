package service

import (
	"salon-booking/models/category"
	"time"
)

// Service is a bookable salon/beauty service.
type Service struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for category relationship
	CategoryID uint              `gorm:"not null;index" json:"category_id"`
	Category   category.Category `gorm:"foreignKey:CategoryID" json:"category"`

	Name            string  `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string `gorm:"type:text" json:"description,omitempty"`
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	DiscountPrice   *float64 `gorm:"type:numeric(10,2)" json:"discount_price,omitempty"`
	DurationMinutes int     `gorm:"not null;default:30" json:"duration_minutes"`
	ImageURL        *string `gorm:"type:varchar(2048)" json:"image_url,omitempty"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedBy string     `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// EffectivePrice returns the discount price when one is set.
func (s *Service) EffectivePrice() float64 {
	if s.DiscountPrice != nil && *s.DiscountPrice > 0 {
		return *s.DiscountPrice
	}
	return s.Price
}
