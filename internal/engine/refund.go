package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

type refundRule struct {
	cutoff   time.Duration   // notice before check-in needed for the refund
	fraction decimal.Decimal // refunded share when the cutoff is met
}

var refundRules = map[domain.CancellationTier]refundRule{
	domain.TierFlexible: {cutoff: 24 * time.Hour, fraction: decimal.NewFromInt(1)},
	domain.TierModerate: {cutoff: 5 * 24 * time.Hour, fraction: decimal.NewFromInt(1)},
	domain.TierStrict:   {cutoff: 7 * 24 * time.Hour, fraction: decimal.RequireFromString("0.5")},
}

// RefundFraction returns the refundable share of a payment. Cancelling at least the
// tier's cutoff before check-in earns the tier fraction (boundary inclusive), later
// cancellations earn nothing. Cancellations after check-in has started are a separate,
// undefined tier and are reported as POST_CHECK_IN.
func RefundFraction(tier domain.CancellationTier, cancelledAt, checkInAt time.Time) (decimal.Decimal, error) {
	rule, ok := refundRules[tier]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown cancellation tier %q", ErrMalformedPolicy, tier)
	}

	if cancelledAt.After(checkInAt) {
		return decimal.Zero, reject(ReasonPostCheckIn, "cancelled at %s, check-in was %s",
			cancelledAt.Format(domain.DateTimeFormat), checkInAt.Format(domain.DateTimeFormat))
	}

	if checkInAt.Sub(cancelledAt) >= rule.cutoff {
		return rule.fraction, nil
	}
	return decimal.Zero, nil
}

// ComputeRefund returns amountPaid × RefundFraction rounded half-up to the currency's
// minor unit.
func ComputeRefund(
	tier domain.CancellationTier,
	cancelledAt, checkInAt time.Time,
	amountPaid decimal.Decimal,
) (decimal.Decimal, error) {
	if amountPaid.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount %s", ErrMalformedRequest, amountPaid)
	}

	fraction, err := RefundFraction(tier, cancelledAt, checkInAt)
	if err != nil {
		return decimal.Zero, err
	}

	// Round is half away from zero, which is half-up for non-negative amounts
	return amountPaid.Mul(fraction).Round(domain.RefundMinorUnitDigits), nil
}
