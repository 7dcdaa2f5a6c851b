package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// DefaultRejectionReason is stored when a host rejects without a comment
const DefaultRejectionReason = "rejected by host"

var allowedTransitions = map[domain.ReservationState][]domain.ReservationState{
	domain.StatePendingReview: {domain.StateConfirmed, domain.StateRejected, domain.StateExpired},
	domain.StateConfirmed:     {domain.StateCancelled},
}

// CanTransition reports whether the workflow allows from -> to
func CanTransition(from, to domain.ReservationState) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NewReservation admits req and creates its workflow instance. Guests that are not
// verified are turned away first when the policy requires verification, then the
// request goes through IsBookable. Instant policies create a confirmed reservation,
// manual ones a pending review. The policy is copied into the reservation and never
// re-read.
func NewReservation(
	id uuid.UUID,
	req domain.ReservationRequest,
	policy domain.BookingPolicy,
	intervals []domain.ConfirmedInterval,
	now time.Time,
) (*domain.Reservation, error) {
	if err := Validate(policy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPolicy, err)
	}
	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount %s", ErrMalformedRequest, req.AmountPaid)
	}

	if !policy.AcceptsUnverifiedGuests && !req.GuestVerified {
		return nil, reject(ReasonGuestNotVerified, "space %d only accepts verified guests", policy.SpaceID)
	}

	if err := IsBookable(req, policy, intervals, now); err != nil {
		return nil, err
	}

	state := domain.StateConfirmed
	if policy.IsManualApproval() {
		state = domain.StatePendingReview
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return &domain.Reservation{
		ID:             id,
		SpaceID:        req.SpaceID,
		GuestID:        req.GuestID,
		Start:          req.Start,
		End:            req.End,
		GuestVerified:  req.GuestVerified,
		State:          state,
		PolicySnapshot: policy,
		AmountPaid:     req.AmountPaid,
		CreatedAt:      createdAt,
		UpdatedAt:      now,
	}, nil
}

// Approve confirms a pending reservation after re-running admission against the
// current intervals, since another reservation may have been confirmed meanwhile.
// If admission fails the reservation is rejected with CONFLICT and ErrConflict is
// returned. Approving after the review deadline expires the reservation instead.
func Approve(r *domain.Reservation, intervals []domain.ConfirmedInterval, now time.Time) error {
	if err := checkTransition(r, domain.StateConfirmed); err != nil {
		return err
	}

	if ExpireIfDue(r, now) {
		return reject(ReasonInvalidTransition, "review deadline %s passed, reservation expired",
			r.ReviewDeadline().Format(domain.DateTimeFormat))
	}

	others := make([]domain.ConfirmedInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.ReservationID != r.ID {
			others = append(others, iv)
		}
	}

	if err := IsBookable(r.Request(), r.PolicySnapshot, others, now); err != nil {
		if !IsRejection(err) {
			return err
		}
		reason := string(ReasonConflict)
		r.RejectionReason = &reason
		resolve(r, domain.StateRejected, now)
		return reject(ReasonConflict, "no longer bookable: %v", err)
	}

	r.State = domain.StateConfirmed
	r.UpdatedAt = now
	return nil
}

// Reject is the host turning down a pending reservation. It is accepted at any time
// while the reservation is still pending, including after the review deadline when
// the expiry sweep has not fired yet.
func Reject(r *domain.Reservation, reason string, now time.Time) error {
	if err := checkTransition(r, domain.StateRejected); err != nil {
		return err
	}

	if reason == "" {
		reason = DefaultRejectionReason
	}
	r.RejectionReason = &reason
	resolve(r, domain.StateRejected, now)
	return nil
}

// ExpireIfDue fires the review timeout: a pending reservation whose review deadline
// has been reached becomes expired and true is returned. In every other case, including
// an already expired reservation, nothing changes and false is returned.
func ExpireIfDue(r *domain.Reservation, now time.Time) bool {
	if r.State != domain.StatePendingReview || now.Before(r.ReviewDeadline()) {
		return false
	}
	resolve(r, domain.StateExpired, now)
	return true
}

// Cancel cancels a confirmed reservation and records the refund computed from the
// snapshot's cancellation tier, using the reservation start as check-in.
// A POST_CHECK_IN rejection leaves the reservation confirmed.
func Cancel(r *domain.Reservation, now time.Time) (decimal.Decimal, error) {
	if err := checkTransition(r, domain.StateCancelled); err != nil {
		return decimal.Zero, err
	}

	refund, err := ComputeRefund(r.PolicySnapshot.CancellationTier, now, r.Start, r.AmountPaid)
	if err != nil {
		return decimal.Zero, err
	}

	r.RefundAmount = &refund
	resolve(r, domain.StateCancelled, now)
	return refund, nil
}

func checkTransition(r *domain.Reservation, to domain.ReservationState) error {
	if !CanTransition(r.State, to) {
		return reject(ReasonInvalidTransition, "%s -> %s", r.State, to)
	}
	return nil
}

func resolve(r *domain.Reservation, state domain.ReservationState, now time.Time) {
	r.State = state
	r.UpdatedAt = now
	resolvedAt := now
	r.ResolvedAt = &resolvedAt
}
