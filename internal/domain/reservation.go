package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationState represents the state of a reservation workflow
type ReservationState string

const (
	StatePendingReview ReservationState = "pending_review"
	StateConfirmed     ReservationState = "confirmed"
	StateRejected      ReservationState = "rejected"
	StateExpired       ReservationState = "expired"
	StateCancelled     ReservationState = "cancelled"
)

// IsValid returns true for known states
func (s ReservationState) IsValid() bool {
	switch s {
	case StatePendingReview, StateConfirmed, StateRejected, StateExpired, StateCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are possible
func (s ReservationState) IsTerminal() bool {
	return s == StateRejected || s == StateExpired || s == StateCancelled
}

// ReservationRequest is a candidate reservation submitted by a guest
type ReservationRequest struct {
	SpaceID       int64
	GuestID       int64
	Start         time.Time
	End           time.Time
	CreatedAt     time.Time
	GuestVerified bool
	AmountPaid    decimal.Decimal
}

// ConfirmedInterval is the time span occupied by a confirmed reservation
type ConfirmedInterval struct {
	ReservationID uuid.UUID
	Start         time.Time
	End           time.Time
}

// Reservation is a single reservation workflow instance
type Reservation struct {
	ID            uuid.UUID
	SpaceID       int64
	GuestID       int64
	Start         time.Time
	End           time.Time
	GuestVerified bool
	State         ReservationState

	// Policy in effect at creation time; later policy edits never touch it
	PolicySnapshot BookingPolicy

	AmountPaid      decimal.Decimal
	RefundAmount    *decimal.Decimal
	RejectionReason *string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time // set when a terminal state is reached
}

// Request returns the reservation as an admission request
func (r *Reservation) Request() ReservationRequest {
	return ReservationRequest{
		SpaceID:       r.SpaceID,
		GuestID:       r.GuestID,
		Start:         r.Start,
		End:           r.End,
		CreatedAt:     r.CreatedAt,
		GuestVerified: r.GuestVerified,
		AmountPaid:    r.AmountPaid,
	}
}

// Interval returns the occupied interval
func (r *Reservation) Interval() ConfirmedInterval {
	return ConfirmedInterval{ReservationID: r.ID, Start: r.Start, End: r.End}
}

// IsConfirmed returns true if the reservation holds its interval
func (r *Reservation) IsConfirmed() bool {
	return r.State == StateConfirmed
}

// IsPending returns true if the reservation awaits host review
func (r *Reservation) IsPending() bool {
	return r.State == StatePendingReview
}

// ReviewDeadline returns the instant the pending review times out
func (r *Reservation) ReviewDeadline() time.Time {
	return r.CreatedAt.Add(ReviewTimeout)
}

// ReservationsFilter фильтр для получения бронирований.
// Должен быть задан SpaceID или GuestID.
type ReservationsFilter struct {
	SpaceID int64             // 0 - любое пространство
	GuestID *int64            // Фильтр по гостю (опционально)
	State   *ReservationState // Фильтр по состоянию (опционально)
	From    *time.Time        // Начало периода по дате заезда (опционально)
	To      *time.Time        // Конец периода по дате заезда (опционально)
}
