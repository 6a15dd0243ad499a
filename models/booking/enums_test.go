package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    ServiceStatus
		to      ServiceStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusOnTheWay, false},
		{StatusPending, StatusServiceStarted, false},
		{StatusPending, StatusDone, false},

		{StatusConfirmed, StatusOnTheWay, true},
		{StatusConfirmed, StatusServiceStarted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDone, false},
		{StatusConfirmed, StatusPending, false},

		{StatusOnTheWay, StatusServiceStarted, true},
		{StatusOnTheWay, StatusCancelled, true},
		{StatusOnTheWay, StatusDone, false},
		{StatusOnTheWay, StatusConfirmed, false},

		{StatusServiceStarted, StatusDone, true},
		{StatusServiceStarted, StatusCancelled, false},
		{StatusServiceStarted, StatusOnTheWay, false},

		{StatusDone, StatusPending, false},
		{StatusDone, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusDone.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	for _, s := range []ServiceStatus{StatusPending, StatusConfirmed, StatusOnTheWay, StatusServiceStarted} {
		assert.False(t, s.IsTerminal(), "%s", s)
	}

	// Nothing leaves a terminal status
	for _, target := range GetAllServiceStatuses() {
		assert.False(t, StatusDone.CanTransitionTo(target), "done -> %s", target)
		assert.False(t, StatusCancelled.CanTransitionTo(target), "cancelled -> %s", target)
	}
}

func TestRequiresOTP(t *testing.T) {
	assert.True(t, StatusServiceStarted.RequiresOTP())
	assert.True(t, StatusDone.RequiresOTP())

	for _, s := range []ServiceStatus{StatusPending, StatusConfirmed, StatusOnTheWay, StatusCancelled} {
		assert.False(t, s.RequiresOTP(), "%s", s)
	}
}

func TestAllowedForArtist(t *testing.T) {
	assert.True(t, StatusOnTheWay.AllowedForArtist())
	assert.True(t, StatusServiceStarted.AllowedForArtist())
	assert.True(t, StatusDone.AllowedForArtist())

	assert.False(t, StatusPending.AllowedForArtist())
	assert.False(t, StatusConfirmed.AllowedForArtist())
	assert.False(t, StatusCancelled.AllowedForArtist())
}

func TestTransitionTypeTargets(t *testing.T) {
	target, ok := TransitionStart.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusServiceStarted, target)

	target, ok = TransitionComplete.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusDone, target)

	_, ok = TransitionRegistration.TargetStatus()
	assert.False(t, ok)

	_, ok = TransitionType("bogus").TargetStatus()
	assert.False(t, ok)
}

func TestParseTransitionType(t *testing.T) {
	parsed, ok := ParseTransitionType("start")
	assert.True(t, ok)
	assert.Equal(t, TransitionStart, parsed)

	parsed, ok = ParseTransitionType("complete")
	assert.True(t, ok)
	assert.Equal(t, TransitionComplete, parsed)

	_, ok = ParseTransitionType("finish")
	assert.False(t, ok)
}
