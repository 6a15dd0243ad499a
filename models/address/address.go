package address

import "time"

// Address is the location an at-home service is delivered to.
type Address struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	City          *string `gorm:"type:varchar(100)" json:"city,omitempty"`
	Area          *string `gorm:"type:varchar(100)" json:"area,omitempty"`
	StreetAddress *string `gorm:"type:text" json:"street_address,omitempty"`
	Landmark      *string `gorm:"type:varchar(255)" json:"landmark,omitempty"`
	Pincode       *string `gorm:"type:varchar(10)" json:"pincode,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
