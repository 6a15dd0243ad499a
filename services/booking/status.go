package booking

import (
	"errors"
	"fmt"
	"time"

	bookingModel "salon-booking/models/booking"
	"salon-booking/storage"
)

var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrIllegalTransition = errors.New("status transition not allowed from current status")
	ErrOTPRequired       = errors.New("status is only reachable through OTP verification")
	ErrRoleNotAllowed    = errors.New("role may not set this status")
	ErrLineNotFound      = errors.New("booking service line not found")
)

// StatusService applies non-gated status transitions. The OTP-gated target
// statuses are rejected here; the verifier is their only path.
type StatusService struct {
	Store storage.Store

	now func() time.Time
}

// NewStatusService creates a status service
func NewStatusService(store storage.Store) *StatusService {
	return &StatusService{
		Store: store,
		now:   time.Now,
	}
}

// UpdateStatus moves a service line to target after checking the
// transition table and role restrictions.
func (s *StatusService) UpdateStatus(serviceLineID uint, target bookingModel.ServiceStatus, actor storage.Actor) (*bookingModel.ServiceLine, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, target)
	}

	if target.RequiresOTP() {
		return nil, fmt.Errorf("%w: %s", ErrOTPRequired, target)
	}

	if actor.Role == "artist" && !target.AllowedForArtist() {
		return nil, fmt.Errorf("%w: artist cannot set %s", ErrRoleNotAllowed, target)
	}

	line, err := s.Store.ServiceLine(serviceLineID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: line %d", ErrLineNotFound, serviceLineID)
		}
		return nil, err
	}

	if !line.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, line.Status, target)
	}

	if err := s.Store.ApplyTransition(line, target, actor, false, s.now()); err != nil {
		return nil, err
	}

	return line, nil
}
