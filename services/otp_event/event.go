package otp_event

import (
	"salon-booking/models/otp"

	"gorm.io/gorm"
)

// SnapshotOTPToEvent writes a full snapshot of an OTP row into OTPEvent with the given event type.
func SnapshotOTPToEvent(tx *gorm.DB, o *otp.OTP, eventType string) error {
	ev := otp.OTPEvent{
		ServiceLineID:  o.ServiceLineID,
		TransitionType: o.TransitionType,
		Phone:          o.Phone,
		OTPCode:        o.OTPCode,
		Verified:       o.Verified,
		IsUsed:         o.IsUsed,
		RetryCount:     o.RetryCount,
		MaxRetries:     o.MaxRetries,
		IsBlocked:      o.IsBlocked,
		BlockedUntil:   o.BlockedUntil,
		LastAttemptAt:  o.LastAttemptAt,
		ExpiresAt:      o.ExpiresAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		EventType:      eventType,
	}

	return tx.Create(&ev).Error
}
