package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeRefund_ScenarioC_FlexibleBoundary(t *testing.T) {
	checkIn := at(2026, time.March, 10, 0, 0)

	refund, err := ComputeRefund(domain.TierFlexible, checkIn.Add(-24*time.Hour), checkIn, amount("1000"))

	require.NoError(t, err)
	assert.True(t, amount("1000").Equal(refund), refund.String())
}

func TestComputeRefund_ScenarioD_StrictBoundary(t *testing.T) {
	checkIn := at(2026, time.March, 10, 0, 0)

	refund, err := ComputeRefund(domain.TierStrict, checkIn.AddDate(0, 0, -7), checkIn, amount("1000"))

	require.NoError(t, err)
	assert.True(t, amount("500").Equal(refund), refund.String())
}

func TestComputeRefund_Table(t *testing.T) {
	checkIn := at(2026, time.March, 10, 14, 0)

	tests := []struct {
		name   string
		tier   domain.CancellationTier
		before time.Duration
		paid   string
		want   string
	}{
		{"flexible just after cutoff", domain.TierFlexible, 24*time.Hour - time.Minute, "1000", "0"},
		{"flexible at check-in", domain.TierFlexible, 0, "1000", "0"},
		{"moderate at cutoff", domain.TierModerate, 5 * 24 * time.Hour, "250.50", "250.5"},
		{"moderate inside cutoff", domain.TierModerate, 4 * 24 * time.Hour, "250.50", "0"},
		{"strict well before", domain.TierStrict, 30 * 24 * time.Hour, "99.99", "50"},
		{"strict rounds half up", domain.TierStrict, 8 * 24 * time.Hour, "0.25", "0.13"},
		{"strict inside cutoff", domain.TierStrict, 6 * 24 * time.Hour, "1000", "0"},
		{"zero paid", domain.TierFlexible, 48 * time.Hour, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refund, err := ComputeRefund(tt.tier, checkIn.Add(-tt.before), checkIn, amount(tt.paid))

			require.NoError(t, err)
			assert.True(t, amount(tt.want).Equal(refund), "got %s, want %s", refund, tt.want)
		})
	}
}

func TestComputeRefund_MonotonicInNotice(t *testing.T) {
	checkIn := at(2026, time.March, 30, 12, 0)
	paid := amount("777.77")

	for _, tier := range []domain.CancellationTier{domain.TierFlexible, domain.TierModerate, domain.TierStrict} {
		prev := decimal.Zero
		for hours := 0; hours <= 14*24; hours++ {
			refund, err := ComputeRefund(tier, checkIn.Add(-time.Duration(hours)*time.Hour), checkIn, paid)
			require.NoError(t, err)

			assert.False(t, refund.LessThan(prev), "%s: refund dropped at %dh", tier, hours)
			assert.False(t, refund.GreaterThan(paid))
			prev = refund
		}
	}
}

func TestComputeRefund_Errors(t *testing.T) {
	checkIn := at(2026, time.March, 10, 14, 0)

	_, err := ComputeRefund(domain.TierFlexible, checkIn.Add(time.Minute), checkIn, amount("100"))
	assert.ErrorIs(t, err, ErrPostCheckIn)

	_, err = ComputeRefund(domain.TierFlexible, checkIn.Add(-48*time.Hour), checkIn, amount("-1"))
	assert.ErrorIs(t, err, ErrMalformedRequest)
	assert.False(t, IsRejection(err))

	_, err = ComputeRefund("lenient", checkIn.Add(-48*time.Hour), checkIn, amount("1"))
	assert.ErrorIs(t, err, ErrMalformedPolicy)
}
