package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

func manualPolicy() domain.BookingPolicy {
	p := scenarioPolicy()
	p.ApprovalMode = domain.ApprovalManual
	return p
}

func wednesdayRequest() domain.ReservationRequest {
	req := request(at(2026, time.March, 4, 14, 0), at(2026, time.March, 4, 18, 0))
	req.AmountPaid = amount("200")
	return req
}

func TestNewReservation_InstantIsConfirmed(t *testing.T) {
	id := uuid.New()

	r, err := NewReservation(id, wednesdayRequest(), scenarioPolicy(), nil, monday10)

	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, domain.StateConfirmed, r.State)
	assert.Equal(t, monday10, r.CreatedAt)
	assert.Nil(t, r.ResolvedAt)
}

func TestNewReservation_ManualIsPending(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)

	require.NoError(t, err)
	assert.Equal(t, domain.StatePendingReview, r.State)
	assert.Equal(t, monday10.Add(24*time.Hour), r.ReviewDeadline())
}

func TestNewReservation_Rejections(t *testing.T) {
	policy := scenarioPolicy()
	policy.AcceptsUnverifiedGuests = false

	req := wednesdayRequest()
	req.GuestVerified = false
	_, err := NewReservation(uuid.New(), req, policy, nil, monday10)
	assert.ErrorIs(t, err, ErrGuestNotVerified)

	req = wednesdayRequest()
	req.Start = at(2026, time.March, 1, 14, 0)
	req.End = at(2026, time.March, 1, 18, 0)
	_, err = NewReservation(uuid.New(), req, scenarioPolicy(), nil, monday10)
	assert.ErrorIs(t, err, ErrBlockedDay)

	req = wednesdayRequest()
	req.AmountPaid = amount("-5")
	_, err = NewReservation(uuid.New(), req, scenarioPolicy(), nil, monday10)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestNewReservation_SnapshotIsFrozen(t *testing.T) {
	policy := scenarioPolicy()
	r, err := NewReservation(uuid.New(), wednesdayRequest(), policy, nil, monday10)
	require.NoError(t, err)

	policy.CancellationTier = domain.TierStrict
	policy.MinimumNoticeHours = 72

	assert.Equal(t, domain.TierFlexible, r.PolicySnapshot.CancellationTier)
	assert.Equal(t, 24, r.PolicySnapshot.MinimumNoticeHours)
}

func TestExpireIfDue_ScenarioE(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)
	require.NoError(t, err)

	assert.False(t, ExpireIfDue(r, monday10.Add(24*time.Hour-time.Second)))
	assert.Equal(t, domain.StatePendingReview, r.State)

	deadline := monday10.Add(24 * time.Hour)
	assert.True(t, ExpireIfDue(r, deadline))
	assert.Equal(t, domain.StateExpired, r.State)
	require.NotNil(t, r.ResolvedAt)
	assert.Equal(t, deadline, *r.ResolvedAt)

	// the timeout firing again changes nothing
	assert.False(t, ExpireIfDue(r, deadline.Add(time.Hour)))
	assert.Equal(t, domain.StateExpired, r.State)
	assert.Equal(t, deadline, *r.ResolvedAt)
}

func TestExpireIfDue_IgnoresConfirmed(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), scenarioPolicy(), nil, monday10)
	require.NoError(t, err)

	assert.False(t, ExpireIfDue(r, monday10.Add(48*time.Hour)))
	assert.Equal(t, domain.StateConfirmed, r.State)
}

func TestApprove(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)
	require.NoError(t, err)

	// its own interval is ignored
	err = Approve(r, []domain.ConfirmedInterval{r.Interval()}, monday10.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirmed, r.State)
}

func TestApprove_ScenarioF_SecondApprovalConflicts(t *testing.T) {
	policy := manualPolicy()
	policy.PreparationBufferMinutes = 60

	first, err := NewReservation(uuid.New(), wednesdayRequest(), policy, nil, monday10)
	require.NoError(t, err)
	second, err := NewReservation(uuid.New(), wednesdayRequest(), policy, nil, monday10)
	require.NoError(t, err)

	var confirmed []domain.ConfirmedInterval
	now := monday10.Add(2 * time.Hour)

	require.NoError(t, Approve(first, confirmed, now))
	confirmed = append(confirmed, first.Interval())

	err = Approve(second, confirmed, now)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, domain.StateRejected, second.State)
	require.NotNil(t, second.RejectionReason)
	assert.Equal(t, string(ReasonConflict), *second.RejectionReason)
	assert.Equal(t, domain.StateConfirmed, first.State)
}

func TestApprove_AfterDeadlineExpires(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)
	require.NoError(t, err)

	err = Approve(r, nil, monday10.Add(25*time.Hour))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StateExpired, r.State)
}

func TestReject(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)
	require.NoError(t, err)

	require.NoError(t, Reject(r, "", monday10.Add(time.Hour)))

	assert.Equal(t, domain.StateRejected, r.State)
	require.NotNil(t, r.RejectionReason)
	assert.Equal(t, DefaultRejectionReason, *r.RejectionReason)
}

func TestReject_AfterDeadlineBeforeSweep(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)
	require.NoError(t, err)

	require.NoError(t, Reject(r, "busy", monday10.Add(25*time.Hour)))

	assert.Equal(t, domain.StateRejected, r.State)
	require.NotNil(t, r.RejectionReason)
	assert.Equal(t, "busy", *r.RejectionReason)
	assert.False(t, ExpireIfDue(r, monday10.Add(26*time.Hour)))
}

func TestReject_AlreadyExpired(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)
	require.NoError(t, err)
	require.True(t, ExpireIfDue(r, monday10.Add(24*time.Hour)))

	assert.ErrorIs(t, Reject(r, "busy", monday10.Add(25*time.Hour)), ErrInvalidTransition)
	assert.Equal(t, domain.StateExpired, r.State)
	assert.Nil(t, r.RejectionReason)
}

func TestInvalidTransitions(t *testing.T) {
	confirmed, err := NewReservation(uuid.New(), wednesdayRequest(), scenarioPolicy(), nil, monday10)
	require.NoError(t, err)

	assert.ErrorIs(t, Approve(confirmed, nil, monday10), ErrInvalidTransition)
	assert.ErrorIs(t, Reject(confirmed, "no", monday10), ErrInvalidTransition)

	pending, err := NewReservation(uuid.New(), wednesdayRequest(), manualPolicy(), nil, monday10)
	require.NoError(t, err)
	_, err = Cancel(pending, monday10)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, Reject(pending, "no", monday10))
	assert.ErrorIs(t, Approve(pending, nil, monday10), ErrInvalidTransition)

	assert.True(t, CanTransition(domain.StatePendingReview, domain.StateExpired))
	assert.False(t, CanTransition(domain.StateCancelled, domain.StateConfirmed))
	assert.False(t, CanTransition(domain.StateExpired, domain.StatePendingReview))
}

func TestCancel(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), scenarioPolicy(), nil, monday10)
	require.NoError(t, err)

	// flexible tier, 28h before check-in
	refund, err := Cancel(r, at(2026, time.March, 3, 10, 0))

	require.NoError(t, err)
	assert.True(t, amount("200").Equal(refund))
	assert.Equal(t, domain.StateCancelled, r.State)
	require.NotNil(t, r.RefundAmount)
	assert.True(t, refund.Equal(*r.RefundAmount))

	_, err = Cancel(r, at(2026, time.March, 3, 11, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_AfterCheckInKeepsReservation(t *testing.T) {
	r, err := NewReservation(uuid.New(), wednesdayRequest(), scenarioPolicy(), nil, monday10)
	require.NoError(t, err)

	_, err = Cancel(r, at(2026, time.March, 4, 15, 0))

	assert.ErrorIs(t, err, ErrPostCheckIn)
	assert.Equal(t, domain.StateConfirmed, r.State)
	assert.Nil(t, r.RefundAmount)
}
