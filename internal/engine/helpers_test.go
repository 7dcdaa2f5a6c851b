package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// at builds a wall-clock instant in the space's local calendar
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

// scenarioPolicy: 24h notice, 3 months lead, 14:00-18:00 same-day, Sundays blocked
func scenarioPolicy() domain.BookingPolicy {
	return domain.BookingPolicy{
		SpaceID:                 7,
		ApprovalMode:            domain.ApprovalInstant,
		AcceptsUnverifiedGuests: true,
		MinimumNoticeHours:      24,
		MaximumLead:             domain.BoundedLead(3),
		AllowsOvernightStay:     false,
		CancellationTier:        domain.TierFlexible,
		CheckInTime:             "14:00",
		CheckOutTime:            "18:00",
		MinimumStayUnits:        1,
		BlockedWeekdays:         domain.NewWeekdaySet(time.Sunday),
	}
}

// overnightPolicy: check-in 15:00, check-out 11:00 next day, at least 2 nights
func overnightPolicy() domain.BookingPolicy {
	p := scenarioPolicy()
	p.AllowsOvernightStay = true
	p.CheckInTime = "15:00"
	p.CheckOutTime = "11:00"
	p.MinimumStayUnits = 2
	p.BlockedWeekdays = 0
	return p
}

func request(start, end time.Time) domain.ReservationRequest {
	return domain.ReservationRequest{
		SpaceID:       7,
		GuestID:       100,
		Start:         start,
		End:           end,
		GuestVerified: true,
	}
}

func interval(start, end time.Time) domain.ConfirmedInterval {
	return domain.ConfirmedInterval{ReservationID: uuid.New(), Start: start, End: end}
}
