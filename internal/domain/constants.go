package domain

import "time"

// Default policy values for a space that has not configured one yet
const (
	DefaultMinimumNoticeHours       = 24
	DefaultMaximumLeadMonths        = 3
	DefaultPreparationBufferMinutes = 0
	DefaultMinimumStayUnits         = 1
	DefaultCheckInTime              = "14:00"
	DefaultCheckOutTime             = "18:00"
)

// Business validation constants
const (
	MaxMinimumNoticeHours       = 24 * 60 // 60 days
	MaxLeadMonths               = 36
	MaxPreparationBufferMinutes = 24 * 60
	MaxMinimumStayUnits         = 365
	MaxRejectionReasonLength    = 500
)

// ReviewTimeout is how long a manual request may wait for a host decision
const ReviewTimeout = 24 * time.Hour

// RefundMinorUnitDigits is the currency minor-unit precision refunds are rounded to
const RefundMinorUnitDigits = 2

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04" // local wall-clock, no zone
)

// ActiveStates состояния, в которых бронирование ещё живо
var ActiveStates = []ReservationState{
	StatePendingReview,
	StateConfirmed,
}

// TerminalStates конечные состояния
var TerminalStates = []ReservationState{
	StateRejected,
	StateExpired,
	StateCancelled,
}

// DefaultPolicy returns the policy applied to spaces without a stored one
func DefaultPolicy(spaceID int64) BookingPolicy {
	return BookingPolicy{
		SpaceID:                  spaceID,
		ApprovalMode:             ApprovalManual,
		AcceptsUnverifiedGuests:  false,
		MinimumNoticeHours:       DefaultMinimumNoticeHours,
		MaximumLead:              BoundedLead(DefaultMaximumLeadMonths),
		AllowsOvernightStay:      false,
		CancellationTier:         TierModerate,
		PreparationBufferMinutes: DefaultPreparationBufferMinutes,
		CheckInTime:              DefaultCheckInTime,
		CheckOutTime:             DefaultCheckOutTime,
		MinimumStayUnits:         DefaultMinimumStayUnits,
	}
}
