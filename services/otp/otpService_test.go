package otp

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	bookingModel "salon-booking/models/booking"
	"salon-booking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentSMS struct {
	phone   string
	message string
}

type fakeSender struct {
	sends []sentSMS
	err   error
}

func (f *fakeSender) Send(ctx context.Context, phone, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sends = append(f.sends, sentSMS{phone: phone, message: message})
	return nil
}

func newTestService() (*Service, *storage.MemoryStore, *fakeSender) {
	store := storage.NewMemoryStore()
	sender := &fakeSender{}
	return NewService(store, sender), store, sender
}

func seedLine(store *storage.MemoryStore, id uint, status bookingModel.ServiceStatus, phone string) *bookingModel.ServiceLine {
	line := &bookingModel.ServiceLine{
		ID:        id,
		BookingID: id,
		Status:    status,
		Booking: bookingModel.Booking{
			ID:            id,
			CustomerName:  "Test Customer",
			CustomerPhone: phone,
		},
	}
	store.PutServiceLine(line)
	return line
}

func issuedCode(t *testing.T, store *storage.MemoryStore, lineID uint, transition bookingModel.TransitionType) string {
	t.Helper()
	rec, err := store.LatestOTP(lineID, transition)
	require.NoError(t, err)
	return rec.OTPCode
}

func TestGenerateOTPProducesSixDigits(t *testing.T) {
	svc, _, _ := newTestService()

	for i := 0; i < 50; i++ {
		code, err := svc.GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestIssueOTPSendsCodeToCustomer(t *testing.T) {
	svc, store, sender := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")

	result, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)

	assert.Equal(t, uint(1), result.ServiceLineID)
	assert.Equal(t, "Test Customer", result.CustomerName)
	assert.Equal(t, "+8801712345678", result.PhoneNumber)

	require.Len(t, sender.sends, 1)
	assert.Equal(t, "+8801712345678", sender.sends[0].phone)

	code := issuedCode(t, store, 1, bookingModel.TransitionStart)
	assert.Contains(t, sender.sends[0].message, code)
	assert.Contains(t, sender.sends[0].message, "start the service")
}

func TestIssueOTPUnknownLine(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.IssueOTP(context.Background(), 42, bookingModel.TransitionStart)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestIssueOTPMissingPhone(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "")

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	assert.ErrorIs(t, err, ErrMissingPhone)
}

func TestIssueOTPRejectsIllegalTransition(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusPending, "+8801712345678")

	// A pending line cannot jump straight to service_started
	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = svc.IssueOTP(context.Background(), 1, bookingModel.TransitionComplete)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestIssueOTPRejectsRegistrationTransition(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionRegistration)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIssueOTPGatewayFailure(t *testing.T) {
	svc, store, sender := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	sender.err = errors.New("gateway unreachable")

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	assert.ErrorIs(t, err, ErrGatewayDispatch)
}

func TestReissueInvalidatesPriorCode(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "op-1", Role: "admin"}

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	firstCode := issuedCode(t, store, 1, bookingModel.TransitionStart)

	_, err = svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	secondCode := issuedCode(t, store, 1, bookingModel.TransitionStart)

	if firstCode != secondCode {
		_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, firstCode, actor)
		assert.ErrorIs(t, err, ErrOTPMismatch)
	}

	result, err := svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, secondCode, actor)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusServiceStarted, result.NewStatus)
}

func TestVerifyOTPSuccessAppliesTransition(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "op-1", Role: "admin"}

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	code := issuedCode(t, store, 1, bookingModel.TransitionStart)

	result, err := svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, code, actor)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusServiceStarted, result.NewStatus)

	line, err := store.ServiceLine(1)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusServiceStarted, line.Status)

	events := store.StatusEvents()
	require.Len(t, events, 1)
	assert.Equal(t, bookingModel.StatusOnTheWay, events[0].FromStatus)
	assert.Equal(t, bookingModel.StatusServiceStarted, events[0].ToStatus)
	assert.True(t, events[0].OTPGated)
	assert.Equal(t, "op-1", events[0].CreatedBy)
}

func TestVerifiedOTPIsSingleUse(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "op-1", Role: "admin"}

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	code := issuedCode(t, store, 1, bookingModel.TransitionStart)

	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, code, actor)
	require.NoError(t, err)

	// The consumed code no longer authorizes anything
	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, code, actor)
	assert.ErrorIs(t, err, ErrNoActiveOTP)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "op-1", Role: "admin"}

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)

	rec, err := store.LatestOTP(1, bookingModel.TransitionStart)
	require.NoError(t, err)
	rec.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.SaveOTP(rec))

	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, rec.OTPCode, actor)
	assert.ErrorIs(t, err, ErrOTPExpired)

	// The line is untouched
	line, err := store.ServiceLine(1)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusOnTheWay, line.Status)
}

func TestVerifyOTPMismatchCountsDownThenBlocks(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "op-1", Role: "admin"}

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	code := issuedCode(t, store, 1, bookingModel.TransitionStart)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, wrong, actor)
	assert.ErrorIs(t, err, ErrOTPMismatch)
	assert.True(t, strings.Contains(err.Error(), "2 attempts remaining"))

	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, wrong, actor)
	assert.ErrorIs(t, err, ErrOTPMismatch)

	// Third failure trips the block
	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, wrong, actor)
	assert.ErrorIs(t, err, ErrOTPBlocked)

	// Even the correct code is rejected while blocked
	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, code, actor)
	assert.ErrorIs(t, err, ErrOTPBlocked)
}

func TestVerifyOTPRollbackKeepsCodeActive(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "op-1", Role: "admin"}

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	code := issuedCode(t, store, 1, bookingModel.TransitionStart)

	store.TransitionErr = errors.New("connection reset")
	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, code, actor)
	assert.ErrorIs(t, err, ErrPersistence)

	// Nothing committed: the line is unchanged and the code still works
	line, err := store.ServiceLine(1)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusOnTheWay, line.Status)

	store.TransitionErr = nil
	result, err := svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, code, actor)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusServiceStarted, result.NewStatus)
}

func TestVerifyOTPClaimsLineForArtist(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "artist-uuid", Role: "artist", UserID: 7}

	_, err := svc.IssueOTP(context.Background(), 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	code := issuedCode(t, store, 1, bookingModel.TransitionStart)

	_, err = svc.VerifyOTP(context.Background(), 1, bookingModel.TransitionStart, code, actor)
	require.NoError(t, err)

	line, err := store.ServiceLine(1)
	require.NoError(t, err)
	require.NotNil(t, line.AssignedTo)
	assert.Equal(t, uint(7), *line.AssignedTo)
	require.NotNil(t, line.AssignedBy)
	assert.Equal(t, "artist-uuid", *line.AssignedBy)
}

func TestStartThenCompleteFlow(t *testing.T) {
	svc, store, _ := newTestService()
	seedLine(store, 1, bookingModel.StatusOnTheWay, "+8801712345678")
	actor := storage.Actor{UUID: "op-1", Role: "controller"}
	ctx := context.Background()

	_, err := svc.IssueOTP(ctx, 1, bookingModel.TransitionStart)
	require.NoError(t, err)
	startCode := issuedCode(t, store, 1, bookingModel.TransitionStart)

	result, err := svc.VerifyOTP(ctx, 1, bookingModel.TransitionStart, startCode, actor)
	require.NoError(t, err)
	require.Equal(t, bookingModel.StatusServiceStarted, result.NewStatus)

	_, err = svc.IssueOTP(ctx, 1, bookingModel.TransitionComplete)
	require.NoError(t, err)
	completeCode := issuedCode(t, store, 1, bookingModel.TransitionComplete)

	result, err = svc.VerifyOTP(ctx, 1, bookingModel.TransitionComplete, completeCode, actor)
	require.NoError(t, err)
	require.Equal(t, bookingModel.StatusDone, result.NewStatus)

	// Done is terminal
	_, err = svc.IssueOTP(ctx, 1, bookingModel.TransitionComplete)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	events := store.StatusEvents()
	require.Len(t, events, 2)
	assert.Equal(t, bookingModel.StatusServiceStarted, events[0].ToStatus)
	assert.Equal(t, bookingModel.StatusDone, events[1].ToStatus)
}

func TestRegistrationOTPFlow(t *testing.T) {
	svc, store, sender := newTestService()
	ctx := context.Background()

	result, err := svc.IssueRegistrationOTP(ctx, "01712345678")
	require.NoError(t, err)
	assert.NotEmpty(t, result.PhoneNumber)
	require.Len(t, sender.sends, 1)

	rec, err := store.LatestRegistrationOTP(result.PhoneNumber)
	require.NoError(t, err)

	err = svc.VerifyRegistrationOTP(ctx, "01712345678", rec.OTPCode)
	require.NoError(t, err)

	// Consumed on success
	err = svc.VerifyRegistrationOTP(ctx, "01712345678", rec.OTPCode)
	assert.ErrorIs(t, err, ErrNoActiveOTP)
}

func TestRegistrationOTPsAreIndependentPerPhone(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	first, err := svc.IssueRegistrationOTP(ctx, "+8801712345678")
	require.NoError(t, err)
	second, err := svc.IssueRegistrationOTP(ctx, "+8801898765432")
	require.NoError(t, err)

	// Issuing for the second phone must not invalidate the first
	firstRec, err := store.LatestRegistrationOTP(first.PhoneNumber)
	require.NoError(t, err)
	secondRec, err := store.LatestRegistrationOTP(second.PhoneNumber)
	require.NoError(t, err)

	require.NoError(t, svc.VerifyRegistrationOTP(ctx, first.PhoneNumber, firstRec.OTPCode))
	require.NoError(t, svc.VerifyRegistrationOTP(ctx, second.PhoneNumber, secondRec.OTPCode))
}

func TestRegistrationOTPMismatch(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	result, err := svc.IssueRegistrationOTP(ctx, "+8801712345678")
	require.NoError(t, err)

	rec, err := store.LatestRegistrationOTP(result.PhoneNumber)
	require.NoError(t, err)

	wrong := "000000"
	if wrong == rec.OTPCode {
		wrong = "000001"
	}

	err = svc.VerifyRegistrationOTP(ctx, result.PhoneNumber, wrong)
	assert.ErrorIs(t, err, ErrOTPMismatch)

	// The real code still works after a single miss
	err = svc.VerifyRegistrationOTP(ctx, result.PhoneNumber, rec.OTPCode)
	require.NoError(t, err)
}
