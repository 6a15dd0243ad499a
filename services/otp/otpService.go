package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"salon-booking/httpServices/sms"
	"salon-booking/logger"
	bookingModel "salon-booking/models/booking"
	otpModel "salon-booking/models/otp"
	"salon-booking/storage"
	"salon-booking/utils"
)

// Failure modes surfaced distinctly so callers can decide between retrying
// issuance, resubmitting a code, or aborting the flow.
var (
	ErrBookingNotFound   = errors.New("booking service line not found")
	ErrMissingPhone      = errors.New("booking has no phone number")
	ErrInvalidTransition = errors.New("unrecognized transition type")
	ErrIllegalTransition = errors.New("status transition not allowed from current status")
	ErrPersistence       = errors.New("otp store write failed")
	ErrGatewayDispatch   = errors.New("sms dispatch failed")
	ErrNoActiveOTP       = errors.New("no active otp for this transition")
	ErrOTPExpired        = errors.New("otp has expired")
	ErrOTPMismatch       = errors.New("otp does not match")
	ErrOTPBlocked        = errors.New("otp verification blocked after too many attempts")
)

const (
	codeLength = 6
	otpTTL     = 10 * time.Minute
	maxRetries = 3
)

// IssueResult echoes booking metadata for caller-side display. The code
// itself only travels over the customer channel.
type IssueResult struct {
	ServiceLineID uint
	CustomerName  string
	PhoneNumber   string
	ExpiresAt     time.Time
}

// VerifyResult reports the applied transition.
type VerifyResult struct {
	NewStatus       bookingModel.ServiceStatus
	StatusUpdatedAt time.Time
}

// Service issues and verifies transition codes
type Service struct {
	Store storage.Store
	SMS   sms.Sender

	now func() time.Time
}

// NewService creates a new OTP service
func NewService(store storage.Store, sender sms.Sender) *Service {
	return &Service{
		Store: store,
		SMS:   sender,
		now:   time.Now,
	}
}

// GenerateOTP draws a uniform 6-digit code from a CSPRNG
func (s *Service) GenerateOTP() (string, error) {
	// Uniform over 100000–999999 inclusive
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IssueOTP generates and dispatches a code gating the given transition for
// a service line. A prior unverified code for the same key is invalidated
// the moment the new record commits.
func (s *Service) IssueOTP(ctx context.Context, serviceLineID uint, transition bookingModel.TransitionType) (*IssueResult, error) {
	target, ok := transition.TargetStatus()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, transition)
	}

	line, err := s.Store.ServiceLine(serviceLineID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: line %d", ErrBookingNotFound, serviceLineID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if line.Booking.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: line %d", ErrMissingPhone, serviceLineID)
	}

	if !line.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, line.Status, target)
	}

	code, err := s.GenerateOTP()
	if err != nil {
		return nil, err
	}

	phone := utils.NormalizePhone(line.Booking.CustomerPhone)
	issuedAt := s.now()

	rec := &otpModel.OTP{
		ServiceLineID:  serviceLineID,
		TransitionType: transition,
		Phone:          phone,
		OTPCode:        code,
		MaxRetries:     maxRetries,
		ExpiresAt:      issuedAt.Add(otpTTL),
		CreatedAt:      issuedAt,
	}

	if err := s.Store.ReplaceActiveOTP(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.SMS.Send(ctx, phone, transitionMessage(transition, code)); err != nil {
		logger.Error(fmt.Sprintf("Failed to dispatch OTP SMS for line %d", serviceLineID), err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayDispatch, err)
	}

	logger.Success(fmt.Sprintf("OTP issued for line %d transition %s to %s", serviceLineID, transition, utils.MaskPhone(phone)))

	return &IssueResult{
		ServiceLineID: serviceLineID,
		CustomerName:  line.Booking.CustomerName,
		PhoneNumber:   phone,
		ExpiresAt:     rec.ExpiresAt,
	}, nil
}

// VerifyOTP validates a submitted code and, on success, marks it verified
// and applies the gated transition in one transaction.
func (s *Service) VerifyOTP(ctx context.Context, serviceLineID uint, transition bookingModel.TransitionType, submitted string, actor storage.Actor) (*VerifyResult, error) {
	target, ok := transition.TargetStatus()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, transition)
	}

	rec, err := s.Store.LatestOTP(serviceLineID, transition)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoActiveOTP
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if rec.IsCurrentlyBlocked() {
		return nil, ErrOTPBlocked
	}

	if rec.IsExpired() {
		// Not marked verified; the caller must re-issue
		return nil, ErrOTPExpired
	}

	if submitted != rec.OTPCode {
		rec.IncrementRetry()
		if err := s.Store.SaveOTP(rec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if rec.IsCurrentlyBlocked() {
			return nil, ErrOTPBlocked
		}
		return nil, fmt.Errorf("%w: %d attempts remaining", ErrOTPMismatch, rec.MaxRetries-rec.RetryCount)
	}

	line, err := s.Store.ServiceLine(serviceLineID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: line %d", ErrBookingNotFound, serviceLineID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !line.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, line.Status, target)
	}

	// Keep an encrypted snapshot of the code for dispute handling
	if encrypted, encErr := utils.EncryptData(rec.OTPCode); encErr == nil && encrypted != "" {
		line.VerifiedOTPEncrypted = &encrypted
	} else if encErr != nil {
		logger.Warning("Could not encrypt OTP snapshot: " + encErr.Error())
	}

	appliedAt := s.now()
	if err := s.Store.CompleteVerification(rec, line, target, actor, appliedAt); err != nil {
		// The verified flag and the status update commit together, so a
		// failure here leaves the code still active for a retry.
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	logger.Success(fmt.Sprintf("Line %d moved to %s via OTP by %s", serviceLineID, target, actor.UUID))

	return &VerifyResult{
		NewStatus:       target,
		StatusUpdatedAt: appliedAt,
	}, nil
}

// IssueRegistrationOTP dispatches an account-registration code. These use
// the sentinel service line ID 0 and are keyed by phone.
func (s *Service) IssueRegistrationOTP(ctx context.Context, phone string) (*IssueResult, error) {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return nil, ErrMissingPhone
	}

	code, err := s.GenerateOTP()
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	rec := &otpModel.OTP{
		ServiceLineID:  0,
		TransitionType: bookingModel.TransitionRegistration,
		Phone:          normalized,
		OTPCode:        code,
		MaxRetries:     maxRetries,
		ExpiresAt:      issuedAt.Add(otpTTL),
		CreatedAt:      issuedAt,
	}

	if err := s.Store.ReplaceActiveOTP(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.SMS.Send(ctx, normalized, transitionMessage(bookingModel.TransitionRegistration, code)); err != nil {
		logger.Error("Failed to dispatch registration OTP SMS", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayDispatch, err)
	}

	return &IssueResult{
		PhoneNumber: normalized,
		ExpiresAt:   rec.ExpiresAt,
	}, nil
}

// VerifyRegistrationOTP validates a registration code for a phone number
// and consumes it. No booking mutation is involved.
func (s *Service) VerifyRegistrationOTP(ctx context.Context, phone, submitted string) error {
	normalized := utils.NormalizePhone(phone)

	rec, err := s.Store.LatestRegistrationOTP(normalized)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNoActiveOTP
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if rec.IsCurrentlyBlocked() {
		return ErrOTPBlocked
	}

	if rec.IsExpired() {
		return ErrOTPExpired
	}

	if submitted != rec.OTPCode {
		rec.IncrementRetry()
		if err := s.Store.SaveOTP(rec); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if rec.IsCurrentlyBlocked() {
			return ErrOTPBlocked
		}
		return fmt.Errorf("%w: %d attempts remaining", ErrOTPMismatch, rec.MaxRetries-rec.RetryCount)
	}

	now := s.now()
	rec.Verified = true
	rec.IsUsed = true
	rec.LastAttemptAt = &now
	if err := s.Store.SaveOTP(rec); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return nil
}

func transitionMessage(transition bookingModel.TransitionType, code string) string {
	switch transition {
	case bookingModel.TransitionStart:
		return fmt.Sprintf("Your code to start the service is %s. It is valid for 10 minutes.", code)
	case bookingModel.TransitionComplete:
		return fmt.Sprintf("Your code to confirm service completion is %s. It is valid for 10 minutes.", code)
	case bookingModel.TransitionRegistration:
		return fmt.Sprintf("Your registration code is %s. It is valid for 10 minutes.", code)
	default:
		return fmt.Sprintf("Your verification code is %s. It is valid for 10 minutes.", code)
	}
}
