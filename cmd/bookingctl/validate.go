package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <policy.toml>",
		Short: "Check a policy file for internal consistency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := loadPolicyFile(args[0])
			if err != nil {
				return err
			}

			if err := engine.Validate(policy); err != nil {
				for _, reason := range engine.ValidationReasons(err) {
					fmt.Fprintln(cmd.OutOrStdout(), reason)
				}
				return fmt.Errorf("policy %s is invalid: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s approval, %s cancellation, minimum stay %d %s, lead %s\n",
				policy.ApprovalMode, policy.CancellationTier, policy.MinimumStayUnits, policy.StayUnit(), policy.MaximumLead)
			return nil
		},
	}
}
