package booking

import (
	"testing"

	bookingModel "salon-booking/models/booking"
	"salon-booking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLine(store *storage.MemoryStore, id uint, status bookingModel.ServiceStatus) {
	store.PutServiceLine(&bookingModel.ServiceLine{
		ID:        id,
		BookingID: id,
		Status:    status,
	})
}

func TestUpdateStatusHappyPath(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewStatusService(store)
	seedLine(store, 1, bookingModel.StatusPending)
	actor := storage.Actor{UUID: "admin-1", Role: "admin"}

	line, err := svc.UpdateStatus(1, bookingModel.StatusConfirmed, actor)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusConfirmed, line.Status)

	events := store.StatusEvents()
	require.Len(t, events, 1)
	assert.Equal(t, bookingModel.StatusPending, events[0].FromStatus)
	assert.Equal(t, bookingModel.StatusConfirmed, events[0].ToStatus)
	assert.False(t, events[0].OTPGated)
	assert.Equal(t, "admin-1", events[0].CreatedBy)
}

func TestUpdateStatusRejectsGatedTargets(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewStatusService(store)
	seedLine(store, 1, bookingModel.StatusOnTheWay)
	actor := storage.Actor{UUID: "admin-1", Role: "admin"}

	_, err := svc.UpdateStatus(1, bookingModel.StatusServiceStarted, actor)
	assert.ErrorIs(t, err, ErrOTPRequired)

	_, err = svc.UpdateStatus(1, bookingModel.StatusDone, actor)
	assert.ErrorIs(t, err, ErrOTPRequired)

	// The line stays where it was
	line, err := store.ServiceLine(1)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusOnTheWay, line.Status)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewStatusService(store)
	actor := storage.Actor{UUID: "admin-1", Role: "admin"}

	_, err := svc.UpdateStatus(1, bookingModel.ServiceStatus("shipped"), actor)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestUpdateStatusArtistRestrictions(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewStatusService(store)
	seedLine(store, 1, bookingModel.StatusConfirmed)
	artist := storage.Actor{UUID: "artist-1", Role: "artist", UserID: 5}

	// Artists cannot confirm or cancel
	_, err := svc.UpdateStatus(1, bookingModel.StatusCancelled, artist)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	// But may set on_the_way
	line, err := svc.UpdateStatus(1, bookingModel.StatusOnTheWay, artist)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusOnTheWay, line.Status)

	// First transition by an unassigned artist claims the line
	require.NotNil(t, line.AssignedTo)
	assert.Equal(t, uint(5), *line.AssignedTo)
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewStatusService(store)
	seedLine(store, 1, bookingModel.StatusCancelled)
	actor := storage.Actor{UUID: "admin-1", Role: "admin"}

	_, err := svc.UpdateStatus(1, bookingModel.StatusConfirmed, actor)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUpdateStatusLineNotFound(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewStatusService(store)
	actor := storage.Actor{UUID: "admin-1", Role: "admin"}

	_, err := svc.UpdateStatus(99, bookingModel.StatusConfirmed, actor)
	assert.ErrorIs(t, err, ErrLineNotFound)
}
