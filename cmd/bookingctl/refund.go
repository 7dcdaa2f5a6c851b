package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
)

func newRefundCmd() *cobra.Command {
	var (
		tier        string
		cancelledAt string
		checkIn     string
		amount      string
	)

	c := &cobra.Command{
		Use:   "refund",
		Short: "Compute the refund for a cancellation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cancelled, err := time.Parse(domain.DateTimeFormat, cancelledAt)
			if err != nil {
				return fmt.Errorf("invalid --cancelled-at (want %s): %w", domain.DateTimeFormat, err)
			}
			checkInAt, err := time.Parse(domain.DateTimeFormat, checkIn)
			if err != nil {
				return fmt.Errorf("invalid --check-in (want %s): %w", domain.DateTimeFormat, err)
			}
			paid, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount: %w", err)
			}

			refund, err := engine.ComputeRefund(domain.CancellationTier(tier), cancelled, checkInAt, paid)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "refund %s of %s (%s, %s before check-in)\n",
				refund.StringFixed(domain.RefundMinorUnitDigits), paid.StringFixed(domain.RefundMinorUnitDigits),
				tier, checkInAt.Sub(cancelled))
			return nil
		},
	}

	c.Flags().StringVar(&tier, "tier", string(domain.TierModerate), "cancellation tier: flexible, moderate or strict")
	c.Flags().StringVar(&cancelledAt, "cancelled-at", "", "cancellation time, "+domain.DateTimeFormat)
	c.Flags().StringVar(&checkIn, "check-in", "", "check-in time, "+domain.DateTimeFormat)
	c.Flags().StringVar(&amount, "amount", "", "amount paid")
	_ = c.MarkFlagRequired("cancelled-at")
	_ = c.MarkFlagRequired("check-in")
	_ = c.MarkFlagRequired("amount")

	return c
}
