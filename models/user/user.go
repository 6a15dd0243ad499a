package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// UserRole identifies the dashboard a user belongs to.
type UserRole string

const (
	RoleMember     UserRole = "member"
	RoleArtist     UserRole = "artist"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
	RoleController UserRole = "controller"
)

// IsValid reports whether the role is one of the recognized roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleMember, RoleArtist, RoleAdmin, RoleSuperAdmin, RoleController:
		return true
	default:
		return false
	}
}

// User model with fields based on the JWT token structure
type User struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string   `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Name          string   `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string   `gorm:"type:varchar(20);not null;unique" json:"phone"`
	PhoneVerified bool     `gorm:"type:bool;default:false" json:"phone_verified"`
	Email         *string  `gorm:"type:varchar(255);unique" json:"email,omitempty"`
	Role          UserRole `gorm:"type:varchar(20);not null;default:member" json:"role"`

	// PBKDF2-SHA256 encoded as pbkdf2_sha256$<iterations>$<salt>$<hash>
	PasswordHash string `gorm:"type:text;not null" json:"-"`

	Avatar      string      `gorm:"type:varchar(2048)" json:"avatar"`
	Permissions StringSlice `gorm:"type:json" json:"permissions"` // Use JSON column to store slice of strings

	CreatedByID *uint `gorm:"index" json:"created_by_id,omitempty"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"created_by,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}
