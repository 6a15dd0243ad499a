package booking

import (
	"time"
)

// ServiceLineStatusEvent represents a status change event for a service line
type ServiceLineStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for service line relationship
	ServiceLineID uint        `gorm:"not null;index" json:"service_line_id"`
	ServiceLine   ServiceLine `gorm:"foreignKey:ServiceLineID" json:"service_line"`

	FromStatus ServiceStatus `gorm:"size:20;not null" json:"from_status"`
	ToStatus   ServiceStatus `gorm:"size:20;not null" json:"to_status"`
	OTPGated   bool          `gorm:"default:false" json:"otp_gated"`
	CreatedBy  string        `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the ServiceLineStatusEvent model
func (ServiceLineStatusEvent) TableName() string {
	return "service_line_status_events"
}
