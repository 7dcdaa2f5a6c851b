package engine

import (
	"errors"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// Validate checks a policy for internal consistency before it is stored.
// Every violated rule is reported (joined with errors.Join), not only the first;
// use ValidationReasons to list the codes. Returns nil for a consistent policy.
func Validate(policy domain.BookingPolicy) error {
	var errs []error

	if policy.MinimumNoticeHours < 0 {
		errs = append(errs, reject(ReasonBadNoticeWindow,
			"minimum notice must be >= 0 hours, got %d", policy.MinimumNoticeHours))
	}
	if months, bounded := policy.MaximumLead.Months(); bounded && months < 1 {
		errs = append(errs, reject(ReasonBadNoticeWindow,
			"maximum lead must be >= 1 month or unlimited, got %d", months))
	}

	if policy.MinimumStayUnits < 1 {
		errs = append(errs, reject(ReasonBadStayMinimum,
			"minimum stay must be >= 1 %s, got %d", policy.StayUnit(), policy.MinimumStayUnits))
	}

	if policy.PreparationBufferMinutes < 0 {
		errs = append(errs, reject(ReasonBadBuffer,
			"preparation buffer must be >= 0 minutes, got %d", policy.PreparationBufferMinutes))
	}

	if err := validateCheckTimes(policy); err != nil {
		errs = append(errs, err)
	}

	if policy.BlockedWeekdays.IsFull() {
		errs = append(errs, reject(ReasonAllDaysBlocked, "all seven weekdays are blocked"))
	}

	if !policy.ApprovalMode.IsValid() {
		errs = append(errs, reject(ReasonBadPolicyEnum, "unknown approval mode %q", policy.ApprovalMode))
	}
	if !policy.CancellationTier.IsValid() {
		errs = append(errs, reject(ReasonBadPolicyEnum, "unknown cancellation tier %q", policy.CancellationTier))
	}

	return errors.Join(errs...)
}

func validateCheckTimes(policy domain.BookingPolicy) error {
	if err := policy.CheckInTime.Validate(); err != nil {
		return reject(ReasonBadCheckTimes, "check-in time %q: %v", policy.CheckInTime, err)
	}
	if err := policy.CheckOutTime.Validate(); err != nil {
		return reject(ReasonBadCheckTimes, "check-out time %q: %v", policy.CheckOutTime, err)
	}

	// Overnight stays check out on a later day, so any pair of times is consistent
	if !policy.AllowsOvernightStay && !policy.CheckOutTime.IsAfter(policy.CheckInTime) {
		return reject(ReasonBadCheckTimes,
			"check-out %s must be after check-in %s for same-day stays",
			policy.CheckOutTime, policy.CheckInTime)
	}
	return nil
}
