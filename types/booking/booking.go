package booking

import "github.com/go-playground/validator/v10"

// ServiceLineRequest is a single service selection within a booking
type ServiceLineRequest struct {
	ServiceID   uint   `json:"service_id" validate:"required"`
	ScheduledAt string `json:"scheduled_at" validate:"required"`
}

// BookingCreateRequest represents the request payload for creating a booking
type BookingCreateRequest struct {
	CustomerName  string               `json:"customer_name" validate:"required,max=255"`
	CustomerPhone string               `json:"customer_phone" validate:"required,min=10,max=20"`
	Notes         string               `json:"notes"`
	ServiceLines  []ServiceLineRequest `json:"service_lines" validate:"required,min=1,dive"`

	// Optional at-home address
	City          string `json:"city"`
	Area          string `json:"area"`
	StreetAddress string `json:"street_address"`
	Landmark      string `json:"landmark"`
	Pincode       string `json:"pincode"`
}

// UpdateStatusRequest is the generic (non-OTP) status update payload
type UpdateStatusRequest struct {
	ServiceLineID uint   `json:"service_line_id" validate:"required"`
	Status        string `json:"status" validate:"required"`
}

// AssignArtistRequest assigns an artist to a service line
type AssignArtistRequest struct {
	ServiceLineID uint `json:"service_line_id" validate:"required"`
	ArtistID      uint `json:"artist_id" validate:"required"`
}

var validate = validator.New()

func (r *BookingCreateRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdateStatusRequest) Validate() error {
	return validate.Struct(r)
}

func (r *AssignArtistRequest) Validate() error {
	return validate.Struct(r)
}
