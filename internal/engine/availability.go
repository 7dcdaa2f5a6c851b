package engine

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// IsBookable decides whether req may be admitted under policy, given the space's
// confirmed intervals and the caller's notion of now. It returns nil when the request
// is bookable and a *Rejection otherwise. Checks run in a fixed order and stop at the
// first failure, so the order defines which reason is reported:
//
//  1. BLOCKED_DAY   start falls on a blocked weekday
//  2. TOO_SOON      start is earlier than now + minimum notice
//  3. TOO_FAR       start is later than now + maximum lead (calendar months, clamped)
//  4. BAD_ALIGNMENT start/end do not sit on check-in/check-out times and dates
//  5. TOO_SHORT     shorter than the minimum stay (nights or hours)
//  6. OVERLAP       intersects an existing interval widened by the preparation buffer
//
// A policy that fails Validate or a request without instants is a programming error
// and yields ErrMalformedPolicy or ErrMalformedRequest instead of a rejection.
func IsBookable(
	req domain.ReservationRequest,
	policy domain.BookingPolicy,
	intervals []domain.ConfirmedInterval,
	now time.Time,
) error {
	if err := Validate(policy); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPolicy, err)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrMalformedRequest)
	}

	if policy.BlockedWeekdays.Contains(req.Start.Weekday()) {
		return reject(ReasonBlockedDay, "%s is a blocked weekday", req.Start.Weekday())
	}

	if earliest := now.Add(policy.MinimumNotice()); req.Start.Before(earliest) {
		return reject(ReasonTooSoon, "start %s is before %s (%dh notice)",
			req.Start.Format(domain.DateTimeFormat), earliest.Format(domain.DateTimeFormat),
			policy.MinimumNoticeHours)
	}

	if months, bounded := policy.MaximumLead.Months(); bounded {
		if latest := AddMonthsClamped(now, months); req.Start.After(latest) {
			return reject(ReasonTooFar, "start %s is after %s (%d months lead)",
				req.Start.Format(domain.DateTimeFormat), latest.Format(domain.DateTimeFormat), months)
		}
	}

	if err := checkAlignment(req, policy); err != nil {
		return err
	}

	if err := checkMinimumStay(req, policy); err != nil {
		return err
	}

	return checkOverlap(req, policy.PreparationBuffer(), intervals)
}

func checkAlignment(req domain.ReservationRequest, policy domain.BookingPolicy) error {
	if !policy.CheckInTime.Matches(req.Start) {
		return reject(ReasonBadAlignment, "start %s is not at check-in time %s",
			req.Start.Format(domain.DateTimeFormat), policy.CheckInTime)
	}
	if !policy.CheckOutTime.Matches(req.End) {
		return reject(ReasonBadAlignment, "end %s is not at check-out time %s",
			req.End.Format(domain.DateTimeFormat), policy.CheckOutTime)
	}

	if !policy.AllowsOvernightStay {
		if nights := domain.DaysBetween(req.Start, req.End); nights != 0 {
			return reject(ReasonBadAlignment, "overnight stays are not allowed, end is %d day(s) after start", nights)
		}
		return nil
	}

	// Nights are the calendar-day difference; the end must still come after the start
	if !req.End.After(req.Start) {
		return reject(ReasonBadAlignment, "end %s is not after start %s",
			req.End.Format(domain.DateTimeFormat), req.Start.Format(domain.DateTimeFormat))
	}
	return nil
}

func checkMinimumStay(req domain.ReservationRequest, policy domain.BookingPolicy) error {
	if policy.AllowsOvernightStay {
		if nights := domain.DaysBetween(req.Start, req.End); nights < policy.MinimumStayUnits {
			return reject(ReasonTooShort, "%d night(s), minimum is %d", nights, policy.MinimumStayUnits)
		}
		return nil
	}

	minimum := time.Duration(policy.MinimumStayUnits) * time.Hour
	if d := req.End.Sub(req.Start); d < minimum {
		return reject(ReasonTooShort, "%s, minimum is %d hour(s)", d, policy.MinimumStayUnits)
	}
	return nil
}

// checkOverlap treats every interval as half-open [start, end). Existing intervals are
// widened by buffer on both sides, so touching the widened edge is not an overlap.
func checkOverlap(req domain.ReservationRequest, buffer time.Duration, intervals []domain.ConfirmedInterval) error {
	for _, iv := range intervals {
		blockedFrom := iv.Start.Add(-buffer)
		blockedUntil := iv.End.Add(buffer)

		if blockedFrom.Before(req.End) && req.Start.Before(blockedUntil) {
			return reject(ReasonOverlap, "overlaps reservation %s blocked %s..%s",
				iv.ReservationID, blockedFrom.Format(domain.DateTimeFormat), blockedUntil.Format(domain.DateTimeFormat))
		}
	}
	return nil
}
