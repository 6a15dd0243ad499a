package storage

import (
	"errors"
	"time"

	bookingModel "salon-booking/models/booking"
	otpModel "salon-booking/models/otp"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// Actor identifies who performed a state change.
type Actor struct {
	UUID   string
	Role   string
	UserID uint
}

// Store is the persistence collaborator for the OTP workflow. The gorm
// implementation backs production; the memory implementation backs tests.
type Store interface {
	// LatestOTP returns the most recent unused OTP for the key, or
	// ErrNotFound when none exists.
	LatestOTP(serviceLineID uint, transition bookingModel.TransitionType) (*otpModel.OTP, error)

	// LatestRegistrationOTP returns the most recent unused registration
	// code for a phone number, or ErrNotFound. Registration codes share
	// the sentinel service line ID 0, so the phone disambiguates.
	LatestRegistrationOTP(phone string) (*otpModel.OTP, error)

	// ReplaceActiveOTP marks any unused codes for the same key as used
	// and inserts the new record, in one transaction. Any in-flight
	// earlier code becomes invalid the moment this commits.
	ReplaceActiveOTP(rec *otpModel.OTP) error

	// SaveOTP persists retry/block bookkeeping on an existing record.
	SaveOTP(rec *otpModel.OTP) error

	// ServiceLine loads a line with its booking, or ErrNotFound.
	ServiceLine(id uint) (*bookingModel.ServiceLine, error)

	// ApplyTransition updates the line status, stamps StatusUpdatedAt and
	// attribution, and appends a status event, in one transaction.
	ApplyTransition(line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, otpGated bool, at time.Time) error

	// CompleteVerification marks the OTP verified and applies the gated
	// transition in a single transaction, so a crash cannot leave the
	// code consumed with the booking status unchanged.
	CompleteVerification(rec *otpModel.OTP, line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, at time.Time) error
}
