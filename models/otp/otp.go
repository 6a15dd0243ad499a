package otp

import (
	"salon-booking/models/booking"
	"time"
)

// OTP represents a one-time code gating a single status transition.
// ServiceLineID 0 is the sentinel for account-registration codes.
type OTP struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ServiceLineID  uint                   `gorm:"not null;index:idx_otps_line_transition" json:"service_line_id"`
	TransitionType booking.TransitionType `gorm:"column:transition_type;type:varchar(50);not null;index:idx_otps_line_transition" json:"transition_type"`

	Phone         string     `gorm:"type:varchar(20);not null;index" json:"phone"`
	OTPCode       string     `gorm:"column:otp_code;type:varchar(6);not null" json:"otp_code"`
	Verified      bool       `gorm:"default:false" json:"verified"`
	IsUsed        bool       `gorm:"default:false" json:"is_used"`
	RetryCount    int        `gorm:"default:0" json:"retry_count"`
	MaxRetries    int        `gorm:"default:3" json:"max_retries"`
	IsBlocked     bool       `gorm:"default:false" json:"is_blocked"`
	BlockedUntil  *time.Time `gorm:"index" json:"blocked_until,omitempty"`
	LastAttemptAt *time.Time `gorm:"index" json:"last_attempt_at,omitempty"`
	ExpiresAt     time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired checks if the OTP has expired
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// IsActive checks if the OTP can still authorize a transition
func (o *OTP) IsActive() bool {
	return !o.IsUsed && !o.Verified && !o.IsExpired() && !o.IsBlocked
}

// IsCurrentlyBlocked checks if the OTP is blocked due to too many retry attempts
func (o *OTP) IsCurrentlyBlocked() bool {
	if !o.IsBlocked {
		return false
	}

	// Nil BlockedUntil means permanently blocked
	if o.BlockedUntil == nil {
		return true
	}

	return time.Now().Before(*o.BlockedUntil)
}

// CanRetry checks if another verification attempt is allowed
func (o *OTP) CanRetry() bool {
	return !o.IsUsed && !o.IsExpired() && !o.IsCurrentlyBlocked() && o.RetryCount < o.MaxRetries
}

// IncrementRetry increments the retry count and blocks if max retries exceeded
func (o *OTP) IncrementRetry() {
	now := time.Now()
	o.RetryCount++
	o.LastAttemptAt = &now

	if o.RetryCount >= o.MaxRetries {
		o.IsBlocked = true
		// Block for 15 minutes after max retries
		blockUntil := now.Add(15 * time.Minute)
		o.BlockedUntil = &blockUntil
	}
}

// Reset resets the OTP retry state (used when unblocking)
func (o *OTP) Reset() {
	o.RetryCount = 0
	o.IsBlocked = false
	o.BlockedUntil = nil
	o.LastAttemptAt = nil
}
