package booking

import (
	"salon-booking/models/address"
	"salon-booking/models/service"
	"salon-booking/models/user"
	"time"
)

// Booking represents a customer booking holding one or more service lines
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint      `gorm:"not null" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	TrackingCode  string `gorm:"type:varchar(64);not null;unique" json:"tracking_code"`
	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20);not null" json:"customer_phone"`
	Notes         *string `gorm:"type:text" json:"notes,omitempty"`

	// Foreign key for address relationship - nullable for in-salon bookings
	AddressID   *uint            `gorm:"index" json:"address_id,omitempty"`
	AddressInfo *address.Address `gorm:"foreignKey:AddressID" json:"address_info,omitempty"`

	ServiceLines []ServiceLine `gorm:"foreignKey:BookingID" json:"service_lines"`

	BookingDate time.Time  `gorm:"not null" json:"booking_date"`
	CreatedBy   string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy   string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at,omitempty"` // Soft delete field
}

// ServiceLine represents a single service within a booking. Status moves
// independently per line; no cascading updates to sibling lines.
type ServiceLine struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for booking relationship
	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID" json:"-"`

	// Foreign key for service relationship
	ServiceID uint            `gorm:"not null;index" json:"service_id"`
	Service   service.Service `gorm:"foreignKey:ServiceID" json:"service"`

	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`

	Status          ServiceStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	StatusUpdatedAt time.Time     `gorm:"" json:"status_updated_at"`

	// Attribution set alongside assignment-type transitions
	AssignedTo *uint      `gorm:"index" json:"assigned_to,omitempty"`
	Artist     *user.User `gorm:"foreignKey:AssignedTo" json:"artist,omitempty"`
	AssignedBy *string    `gorm:"type:varchar(255)" json:"assigned_by,omitempty"`
	AssignedOn *time.Time `gorm:"" json:"assigned_on,omitempty"`

	// Encrypted snapshot of the code that authorized the last gated
	// transition, kept for dispute handling
	VerifiedOTPEncrypted *string `gorm:"column:verified_otp_encrypted;type:text" json:"verified_otp_encrypted,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the table name for the ServiceLine model
func (ServiceLine) TableName() string {
	return "booking_service_lines"
}
