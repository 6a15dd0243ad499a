package booking

// ServiceStatus is the lifecycle state of a single booking service line
type ServiceStatus string

const (
	StatusPending        ServiceStatus = "pending"
	StatusConfirmed      ServiceStatus = "confirm"
	StatusOnTheWay       ServiceStatus = "on_the_way"
	StatusServiceStarted ServiceStatus = "service_started"
	StatusDone           ServiceStatus = "done"
	StatusCancelled      ServiceStatus = "cancelled"
)

// Helper methods for ServiceStatus
func (s ServiceStatus) String() string {
	return string(s)
}

func (s ServiceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOnTheWay, StatusServiceStarted, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is allowed from the status
func (s ServiceStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// transitions is the legal transition table. Out-of-table moves are
// rejected; there is no path out of a terminal status.
var transitions = map[ServiceStatus][]ServiceStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusOnTheWay, StatusServiceStarted, StatusCancelled},
	StatusOnTheWay:       {StatusServiceStarted, StatusCancelled},
	StatusServiceStarted: {StatusDone},
	StatusDone:           {},
	StatusCancelled:      {},
}

// CanTransitionTo reports whether moving from s to target is legal
func (s ServiceStatus) CanTransitionTo(target ServiceStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// RequiresOTP reports whether a status may only be reached through the
// OTP-gated verification path. The generic status update endpoint rejects
// these targets.
func (s ServiceStatus) RequiresOTP() bool {
	return s == StatusServiceStarted || s == StatusDone
}

// ArtistAllowedStatuses are the statuses an artist may set from their own
// dashboard. Enforced server-side, not just filtered in the UI.
var ArtistAllowedStatuses = []ServiceStatus{
	StatusOnTheWay,
	StatusServiceStarted,
	StatusDone,
}

// AllowedForArtist reports whether an artist may set the status
func (s ServiceStatus) AllowedForArtist() bool {
	for _, allowed := range ArtistAllowedStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// GetAllServiceStatuses returns all valid service line statuses
func GetAllServiceStatuses() []ServiceStatus {
	return []ServiceStatus{
		StatusPending,
		StatusConfirmed,
		StatusOnTheWay,
		StatusServiceStarted,
		StatusDone,
		StatusCancelled,
	}
}

// TransitionType tags which status change an OTP authorizes
type TransitionType string

const (
	TransitionStart        TransitionType = "start"
	TransitionComplete     TransitionType = "complete"
	TransitionRegistration TransitionType = "registration"
)

func (t TransitionType) String() string {
	return string(t)
}

func (t TransitionType) IsValid() bool {
	switch t {
	case TransitionStart, TransitionComplete, TransitionRegistration:
		return true
	default:
		return false
	}
}

// TargetStatus returns the service line status a transition type moves a
// line into. Registration is an account flow and has no target status.
func (t TransitionType) TargetStatus() (ServiceStatus, bool) {
	switch t {
	case TransitionStart:
		return StatusServiceStarted, true
	case TransitionComplete:
		return StatusDone, true
	default:
		return "", false
	}
}

// ParseTransitionType converts a request tag into a TransitionType
func ParseTransitionType(tag string) (TransitionType, bool) {
	t := TransitionType(tag)
	return t, t.IsValid()
}
