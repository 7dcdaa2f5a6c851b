package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
)

func newSlotsCmd() *cobra.Command {
	var (
		nowFlag     string
		horizonDays int
		limit       int
	)

	c := &cobra.Command{
		Use:   "slots <policy.toml>",
		Short: "Print the slots a policy offers on an empty calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := loadPolicyFile(args[0])
			if err != nil {
				return err
			}
			if err := engine.Validate(policy); err != nil {
				return fmt.Errorf("policy %s is invalid: %w", args[0], err)
			}

			now := time.Now().UTC().Truncate(time.Minute)
			if nowFlag != "" {
				if now, err = time.Parse(domain.DateTimeFormat, nowFlag); err != nil {
					return fmt.Errorf("invalid --now (want %s): %w", domain.DateTimeFormat, err)
				}
			}

			slots := engine.Slots(policy, nil, now, horizonDays, limit)
			for _, s := range slots {
				units := int(s.Duration().Hours())
				if policy.AllowsOvernightStay {
					units = s.Nights()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %d %s\n",
					s.Start.Format(domain.DateTimeFormat), s.End.Format(domain.DateTimeFormat),
					s.Start.Weekday().String()[:3], units, policy.StayUnit())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d slot(s)\n", len(slots))
			return nil
		},
	}

	c.Flags().StringVar(&nowFlag, "now", "", "reference time, "+domain.DateTimeFormat+" (default: current UTC time)")
	c.Flags().IntVar(&horizonDays, "horizon-days", 90, "enumeration horizon for policies without a lead limit")
	c.Flags().IntVar(&limit, "limit", 20, "maximum number of slots, 0 for no cap")

	return c
}
