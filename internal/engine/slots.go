package engine

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// CandidateSlots lazily yields the bookable windows of a space, one candidate per
// calendar day, in chronological order.
//
// Enumeration starts on the calendar day of now + minimum notice and stops after the
// lead-time bound. An unlimited lead has no natural end, so horizonDays bounds it
// explicitly (now + horizonDays days); with an unlimited lead and horizonDays <= 0
// nothing is yielded. horizonDays is ignored for bounded leads.
//
// Each day's candidate starts at check-in and ends at check-out on the same day, or,
// for overnight policies, MinimumStayUnits nights later. A candidate is yielded only if
// IsBookable accepts it with the same inputs. The sequence holds no cursor state and
// may be ranged over any number of times.
func CandidateSlots(
	policy domain.BookingPolicy,
	intervals []domain.ConfirmedInterval,
	now time.Time,
	horizonDays int,
) iter.Seq[domain.Slot] {
	return func(yield func(domain.Slot) bool) {
		if Validate(policy) != nil {
			return
		}

		limit, ok := enumerationLimit(policy, now, horizonDays)
		if !ok {
			return
		}

		for day := domain.DateOf(now.Add(policy.MinimumNotice())); !day.After(limit); day = day.AddDate(0, 0, 1) {
			if policy.BlockedWeekdays.Contains(day.Weekday()) {
				continue
			}

			slot := candidateFor(day, policy)
			if slot.Start.After(limit) {
				return
			}

			req := domain.ReservationRequest{
				SpaceID:       policy.SpaceID,
				Start:         slot.Start,
				End:           slot.End,
				GuestVerified: true,
			}
			if IsBookable(req, policy, intervals, now) != nil {
				continue
			}

			if !yield(slot) {
				return
			}
		}
	}
}

// Slots collects CandidateSlots into a slice, stopping after limit slots (limit <= 0: no cap)
func Slots(
	policy domain.BookingPolicy,
	intervals []domain.ConfirmedInterval,
	now time.Time,
	horizonDays int,
	limit int,
) []domain.Slot {
	slots := make([]domain.Slot, 0)
	for slot := range CandidateSlots(policy, intervals, now, horizonDays) {
		slots = append(slots, slot)
		if limit > 0 && len(slots) >= limit {
			break
		}
	}
	return slots
}

func enumerationLimit(policy domain.BookingPolicy, now time.Time, horizonDays int) (time.Time, bool) {
	if months, bounded := policy.MaximumLead.Months(); bounded {
		return AddMonthsClamped(now, months), true
	}
	if horizonDays <= 0 {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, horizonDays), true
}

func candidateFor(day time.Time, policy domain.BookingPolicy) domain.Slot {
	endDay := day
	if policy.AllowsOvernightStay {
		endDay = day.AddDate(0, 0, policy.MinimumStayUnits)
	}
	return domain.Slot{
		Start: policy.CheckInTime.On(day),
		End:   policy.CheckOutTime.On(endDay),
	}
}
