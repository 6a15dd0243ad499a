package auth

import "github.com/go-playground/validator/v10"

// LoginRequest represents the login payload
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,min=10,max=20"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest creates a member account after OTP verification
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Phone    string `json:"phone" validate:"required,min=10,max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	OTPCode  string `json:"otp" validate:"required,len=6,numeric"`
}

// LoginResponse carries the signed token and basic profile fields
type LoginResponse struct {
	Token string `json:"token"`
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

var validate = validator.New()

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}
