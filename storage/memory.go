package storage

import (
	"sync"
	"time"

	bookingModel "salon-booking/models/booking"
	otpModel "salon-booking/models/otp"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu sync.Mutex

	otps   []*otpModel.OTP
	lines  map[uint]*bookingModel.ServiceLine
	events []bookingModel.ServiceLineStatusEvent
	nextID uint

	// TransitionErr, when set, makes the booking update inside
	// CompleteVerification fail so callers can exercise the rollback path.
	TransitionErr error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lines:  make(map[uint]*bookingModel.ServiceLine),
		nextID: 1,
	}
}

// PutServiceLine seeds a service line
func (s *MemoryStore) PutServiceLine(line *bookingModel.ServiceLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line.ID] = line
}

// StatusEvents returns the recorded audit rows
func (s *MemoryStore) StatusEvents() []bookingModel.ServiceLineStatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bookingModel.ServiceLineStatusEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *MemoryStore) LatestOTP(serviceLineID uint, transition bookingModel.TransitionType) (*otpModel.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *otpModel.OTP
	for _, rec := range s.otps {
		if rec.ServiceLineID != serviceLineID || rec.TransitionType != transition || rec.IsUsed {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}

	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *MemoryStore) LatestRegistrationOTP(phone string) (*otpModel.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *otpModel.OTP
	for _, rec := range s.otps {
		if rec.ServiceLineID != 0 || rec.TransitionType != bookingModel.TransitionRegistration ||
			rec.Phone != phone || rec.IsUsed {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}

	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *MemoryStore) ReplaceActiveOTP(rec *otpModel.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.otps {
		if existing.ServiceLineID == rec.ServiceLineID &&
			existing.TransitionType == rec.TransitionType &&
			!existing.IsUsed {
			if rec.ServiceLineID == 0 && existing.Phone != rec.Phone {
				continue
			}
			existing.IsUsed = true
		}
	}

	if rec.ID == 0 {
		rec.ID = s.nextID
		s.nextID++
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	s.otps = append(s.otps, &cp)
	return nil
}

func (s *MemoryStore) SaveOTP(rec *otpModel.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.otps {
		if existing.ID == rec.ID {
			cp := *rec
			s.otps[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ServiceLine(id uint) (*bookingModel.ServiceLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *line
	return &cp, nil
}

func (s *MemoryStore) ApplyTransition(line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, otpGated bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyTransitionLocked(line, target, actor, otpGated, at)
}

func (s *MemoryStore) CompleteVerification(rec *otpModel.OTP, line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Both writes commit together or not at all
	if s.TransitionErr != nil {
		return s.TransitionErr
	}

	for i, existing := range s.otps {
		if existing.ID == rec.ID {
			cp := *rec
			cp.Verified = true
			cp.IsUsed = true
			cp.LastAttemptAt = &at
			s.otps[i] = &cp
			rec.Verified = true
			rec.IsUsed = true
			rec.LastAttemptAt = &at
			break
		}
	}

	return s.applyTransitionLocked(line, target, actor, otpGated(target), at)
}

func otpGated(target bookingModel.ServiceStatus) bool {
	return target.RequiresOTP()
}

func (s *MemoryStore) applyTransitionLocked(line *bookingModel.ServiceLine, target bookingModel.ServiceStatus, actor Actor, gated bool, at time.Time) error {
	stored, ok := s.lines[line.ID]
	if !ok {
		return ErrNotFound
	}

	from := stored.Status
	stored.Status = target
	stored.StatusUpdatedAt = at

	if actor.Role == "artist" && stored.AssignedTo == nil && actor.UserID != 0 {
		uid := actor.UserID
		stored.AssignedTo = &uid
		assignedBy := actor.UUID
		stored.AssignedBy = &assignedBy
		stored.AssignedOn = &at
	}

	*line = *stored

	s.events = append(s.events, bookingModel.ServiceLineStatusEvent{
		ServiceLineID: line.ID,
		FromStatus:    from,
		ToStatus:      target,
		OTPGated:      gated,
		CreatedBy:     actor.UUID,
		CreatedAt:     at,
	})
	return nil
}
