package catalog

import "github.com/go-playground/validator/v10"

// CategoryRequest represents the create/update payload for a category
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=120"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// ServiceRequest represents the create/update payload for a salon service
type ServiceRequest struct {
	CategoryID      uint     `json:"category_id" validate:"required"`
	Name            string   `json:"name" validate:"required,max=255"`
	Description     string   `json:"description"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice   *float64 `json:"discount_price" validate:"omitempty,gt=0"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	ImageURL        string   `json:"image_url" validate:"omitempty,url"`
	IsActive        *bool    `json:"is_active"`
}

// BannerRequest represents the create/update payload for a banner image
type BannerRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	ImageURL  string `json:"image_url" validate:"required,url"`
	LinkURL   string `json:"link_url" validate:"omitempty,url"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// StatusCodeRequest represents the create/update payload for a status code row
type StatusCodeRequest struct {
	Code      string `json:"code" validate:"required,max=50"`
	Label     string `json:"label" validate:"required,max=100"`
	Color     string `json:"color" validate:"omitempty,max=20"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

var validate = validator.New()

func (r *CategoryRequest) Validate() error   { return validate.Struct(r) }
func (r *ServiceRequest) Validate() error    { return validate.Struct(r) }
func (r *BannerRequest) Validate() error     { return validate.Struct(r) }
func (r *StatusCodeRequest) Validate() error { return validate.Struct(r) }
