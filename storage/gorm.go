package storage

import (
	"errors"
	"fmt"
	"time"

	bookingModel "salon-booking/models/booking"
	otpModel "salon-booking/models/otp"
	"salon-booking/services/booking_event"
	"salon-booking/services/otp_event"

	"gorm.io/gorm"
)

// GormStore is the PostgreSQL-backed Store.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore creates a gorm-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// LatestOTP returns the most recent unused OTP for the key
func (s *GormStore) LatestOTP(serviceLineID uint, transition bookingModel.TransitionType) (*otpModel.OTP, error) {
	var rec otpModel.OTP

	err := s.DB.Where("service_line_id = ? AND transition_type = ? AND is_used = false",
		serviceLineID, transition).
		Order("created_at DESC").
		First(&rec).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find OTP record: %w", err)
	}

	return &rec, nil
}

// LatestRegistrationOTP returns the most recent unused registration code
// for a phone number
func (s *GormStore) LatestRegistrationOTP(phone string) (*otpModel.OTP, error) {
	var rec otpModel.OTP

	err := s.DB.Where("service_line_id = 0 AND transition_type = ? AND phone = ? AND is_used = false",
		bookingModel.TransitionRegistration, phone).
		Order("created_at DESC").
		First(&rec).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find registration OTP record: %w", err)
	}

	return &rec, nil
}

// ReplaceActiveOTP invalidates prior unused codes for the key and inserts
// the new record in one transaction
func (s *GormStore) ReplaceActiveOTP(rec *otpModel.OTP) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		scope := tx.Model(&otpModel.OTP{}).
			Where("service_line_id = ? AND transition_type = ? AND is_used = false",
				rec.ServiceLineID, rec.TransitionType)
		// Registration codes share the sentinel line ID 0
		if rec.ServiceLineID == 0 {
			scope = scope.Where("phone = ?", rec.Phone)
		}
		if err := scope.Update("is_used", true).Error; err != nil {
			return fmt.Errorf("failed to invalidate existing OTPs: %w", err)
		}

		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create OTP record: %w", err)
		}

		return otp_event.SnapshotOTPToEvent(tx, rec, "issued")
	})
}

// SaveOTP persists retry/block bookkeeping
func (s *GormStore) SaveOTP(rec *otpModel.OTP) error {
	if err := s.DB.Save(rec).Error; err != nil {
		return fmt.Errorf("failed to save OTP record: %w", err)
	}
	return nil
}

// ServiceLine loads a line with its booking and service
func (s *GormStore) ServiceLine(id uint) (*bookingModel.ServiceLine, error) {
	var line bookingModel.ServiceLine

	err := s.DB.Preload("Booking").Preload("Service").First(&line, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service line: %w", err)
	}

	return &line, nil
}

// ApplyTransition updates the line and appends the audit row
func (s *GormStore) ApplyTransition(line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, otpGated bool, at time.Time) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return applyTransitionTx(tx, line, target, actor, otpGated, at)
	})
}

// CompleteVerification marks the OTP verified and applies the transition
// atomically
func (s *GormStore) CompleteVerification(rec *otpModel.OTP, line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, at time.Time) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		rec.Verified = true
		rec.IsUsed = true
		rec.LastAttemptAt = &at
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to mark OTP verified: %w", err)
		}

		if err := otp_event.SnapshotOTPToEvent(tx, rec, "verified"); err != nil {
			return err
		}

		return applyTransitionTx(tx, line, target, actor, true, at)
	})
}

func applyTransitionTx(tx *gorm.DB, line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, otpGated bool, at time.Time) error {
	from := line.Status

	line.Status = target
	line.StatusUpdatedAt = at

	// First gated transition by an artist claims the line
	if actor.Role == "artist" && line.AssignedTo == nil && actor.UserID != 0 {
		line.AssignedTo = &actor.UserID
		assignedBy := actor.UUID
		line.AssignedBy = &assignedBy
		line.AssignedOn = &at
	}

	if err := tx.Save(line).Error; err != nil {
		return fmt.Errorf("failed to update service line: %w", err)
	}

	return booking_event.RecordStatusEvent(tx, line.ID, from, target, otpGated, actor.UUID)
}
