package otp

import "github.com/go-playground/validator/v10"

// IssueOTPRequest represents the request payload for issuing a transition OTP
type IssueOTPRequest struct {
	ServiceLineID  uint   `json:"service_line_id" validate:"required"`
	TransitionType string `json:"transition_type" validate:"required,oneof=start complete"`
}

// VerifyOTPRequest represents the request payload for verifying a transition OTP
type VerifyOTPRequest struct {
	ServiceLineID  uint   `json:"service_line_id" validate:"required"`
	TransitionType string `json:"transition_type" validate:"required,oneof=start complete"`
	OTPCode        string `json:"otp" validate:"required,len=6,numeric"`
}

// RegistrationOTPRequest is used for the account-registration flow
type RegistrationOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
}

// VerifyRegistrationOTPRequest verifies a registration code for a phone
type VerifyRegistrationOTPRequest struct {
	Phone   string `json:"phone" validate:"required,min=10,max=20"`
	OTPCode string `json:"otp" validate:"required,len=6,numeric"`
}

// IssueOTPResponse echoes booking metadata for caller-side display.
// The code itself never appears here; it only reaches the customer channel.
type IssueOTPResponse struct {
	Message       string `json:"message"`
	ServiceLineID uint   `json:"service_line_id"`
	CustomerName  string `json:"customer_name"`
	PhoneNumber   string `json:"phone_number"`
	ExpiresAt     string `json:"expires_at"`
}

// VerifyOTPResponse reports the applied transition
type VerifyOTPResponse struct {
	Success         bool   `json:"success"`
	NewStatus       string `json:"new_status,omitempty"`
	StatusUpdatedAt string `json:"status_updated_at,omitempty"`
	Error           string `json:"error,omitempty"`
}

var validate = validator.New()

// Validate validates the issue request fields
func (r *IssueOTPRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the verify request fields
func (r *VerifyOTPRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the registration request fields
func (r *RegistrationOTPRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the registration verify request fields
func (r *VerifyRegistrationOTPRequest) Validate() error {
	return validate.Struct(r)
}
