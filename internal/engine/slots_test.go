package engine

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

func TestCandidateSlots_BoundedLead(t *testing.T) {
	slots := Slots(scenarioPolicy(), nil, monday10, 0, 0)

	// Mar 3 .. Jun 1 without Sundays; Jun 2 14:00 is past the lead limit
	require.Len(t, slots, 78)
	assert.Equal(t, domain.Slot{Start: at(2026, time.March, 3, 14, 0), End: at(2026, time.March, 3, 18, 0)}, slots[0])
	assert.Equal(t, at(2026, time.June, 1, 14, 0), slots[len(slots)-1].Start)

	for _, s := range slots {
		assert.NotEqual(t, time.Sunday, s.Start.Weekday())
	}
}

func TestCandidateSlots_AgreesWithIsBookable(t *testing.T) {
	policy := scenarioPolicy()
	policy.PreparationBufferMinutes = 30
	intervals := []domain.ConfirmedInterval{
		interval(at(2026, time.March, 4, 14, 0), at(2026, time.March, 4, 18, 0)),
		interval(at(2026, time.March, 10, 18, 15), at(2026, time.March, 10, 20, 0)),
	}

	slots := Slots(policy, intervals, monday10, 0, 0)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		req := domain.ReservationRequest{SpaceID: policy.SpaceID, Start: s.Start, End: s.End, GuestVerified: true}
		assert.NoError(t, IsBookable(req, policy, intervals, monday10), s.Start)
	}

	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.NotContains(t, starts, at(2026, time.March, 4, 14, 0))
	assert.NotContains(t, starts, at(2026, time.March, 10, 14, 0))
	assert.Contains(t, starts, at(2026, time.March, 5, 14, 0))
}

func TestCandidateSlots_EveryDayAgreesWithIsBookable(t *testing.T) {
	buffered := scenarioPolicy()
	buffered.PreparationBufferMinutes = 30
	buffered.BlockedWeekdays = domain.NewWeekdaySet(time.Sunday, time.Saturday)

	shortLead := overnightPolicy()
	shortLead.MaximumLead = domain.BoundedLead(1)
	shortLead.MinimumNoticeHours = 30

	tests := []struct {
		name      string
		policy    domain.BookingPolicy
		now       time.Time
		intervals []domain.ConfirmedInterval
	}{
		{
			name:   "same day with buffer",
			policy: buffered,
			now:    monday10,
			intervals: []domain.ConfirmedInterval{
				interval(at(2026, time.March, 4, 14, 0), at(2026, time.March, 4, 18, 0)),
				interval(at(2026, time.March, 10, 18, 15), at(2026, time.March, 10, 20, 0)),
				interval(at(2026, time.April, 20, 9, 0), at(2026, time.April, 20, 13, 45)),
			},
		},
		{
			name:   "overnight",
			policy: shortLead,
			now:    monday10,
			intervals: []domain.ConfirmedInterval{
				interval(at(2026, time.March, 5, 15, 0), at(2026, time.March, 7, 11, 0)),
				interval(at(2026, time.March, 20, 15, 0), at(2026, time.March, 21, 11, 0)),
			},
		},
		{
			name:   "month end clamp",
			policy: scenarioPolicy(),
			now:    at(2026, time.January, 31, 16, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, ok := enumerationLimit(tt.policy, tt.now, 0)
			require.True(t, ok)

			offered := make(map[time.Time]domain.Slot)
			for _, s := range Slots(tt.policy, tt.intervals, tt.now, 0, 0) {
				offered[s.Start] = s
			}
			require.NotEmpty(t, offered)

			// from the day of the request to two days past the lead limit
			seen := 0
			last := domain.DateOf(limit).AddDate(0, 0, 2)
			for day := domain.DateOf(tt.now); !day.After(last); day = day.AddDate(0, 0, 1) {
				candidate := candidateFor(day, tt.policy)
				req := domain.ReservationRequest{
					SpaceID:       tt.policy.SpaceID,
					Start:         candidate.Start,
					End:           candidate.End,
					GuestVerified: true,
				}

				bookable := IsBookable(req, tt.policy, tt.intervals, tt.now) == nil
				slot, listed := offered[candidate.Start]

				assert.Equal(t, bookable, listed, "day %s", day.Format(time.DateOnly))
				if listed {
					seen++
					assert.Equal(t, candidate, slot)
				}
			}
			assert.Equal(t, len(offered), seen)
		})
	}
}

func TestCandidateSlots_Restartable(t *testing.T) {
	seq := CandidateSlots(scenarioPolicy(), nil, monday10, 0)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
}

func TestCandidateSlots_EarlyStop(t *testing.T) {
	var got []domain.Slot
	for s := range CandidateSlots(scenarioPolicy(), nil, monday10, 0) {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}
	assert.Len(t, got, 3)

	assert.Len(t, Slots(scenarioPolicy(), nil, monday10, 0, 5), 5)
}

func TestCandidateSlots_UnlimitedLead(t *testing.T) {
	policy := scenarioPolicy()
	policy.MaximumLead = domain.UnlimitedLead()

	// horizon ends Mar 12 10:00: Mar 3..11 without Sunday the 8th
	slots := Slots(policy, nil, monday10, 10, 0)
	assert.Len(t, slots, 8)

	assert.Empty(t, Slots(policy, nil, monday10, 0, 0))
}

func TestCandidateSlots_Overnight(t *testing.T) {
	policy := overnightPolicy()
	policy.MaximumLead = domain.BoundedLead(1)
	intervals := []domain.ConfirmedInterval{
		interval(at(2026, time.March, 5, 15, 0), at(2026, time.March, 7, 11, 0)),
	}

	slots := Slots(policy, intervals, monday10, 0, 3)
	require.Len(t, slots, 3)

	assert.Equal(t, domain.Slot{Start: at(2026, time.March, 3, 15, 0), End: at(2026, time.March, 5, 11, 0)}, slots[0])
	assert.Equal(t, at(2026, time.March, 7, 15, 0), slots[1].Start)
	assert.Equal(t, at(2026, time.March, 8, 15, 0), slots[2].Start)
	assert.Equal(t, 2, slots[0].Nights())
}

func TestCandidateSlots_MalformedPolicy(t *testing.T) {
	policy := scenarioPolicy()
	policy.CheckInTime = "25:00"

	assert.Empty(t, Slots(policy, nil, monday10, 30, 0))
}
