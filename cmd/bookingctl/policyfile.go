package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// policyFile правила пространства в TOML. Отсутствующий maximum_lead_months
// означает срок без ограничения.
type policyFile struct {
	SpaceID                  int64    `toml:"space_id"`
	ApprovalMode             string   `toml:"approval_mode"`
	AcceptsUnverifiedGuests  bool     `toml:"accepts_unverified_guests"`
	MinimumNoticeHours       int      `toml:"minimum_notice_hours"`
	MaximumLeadMonths        *int     `toml:"maximum_lead_months"`
	AllowsOvernightStay      bool     `toml:"allows_overnight_stay"`
	CancellationTier         string   `toml:"cancellation_tier"`
	PreparationBufferMinutes int      `toml:"preparation_buffer_minutes"`
	CheckInTime              string   `toml:"check_in_time"`
	CheckOutTime             string   `toml:"check_out_time"`
	MinimumStayUnits         int      `toml:"minimum_stay_units"`
	BlockedWeekdays          []string `toml:"blocked_weekdays"`
}

func loadPolicyFile(path string) (domain.BookingPolicy, error) {
	var f policyFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("read policy %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return domain.BookingPolicy{}, fmt.Errorf("policy %s: unknown keys %v", path, undecoded)
	}

	blocked, err := domain.ParseWeekdaySet(f.BlockedWeekdays)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("policy %s: blocked_weekdays: %w", path, err)
	}

	return domain.BookingPolicy{
		SpaceID:                  f.SpaceID,
		ApprovalMode:             domain.ApprovalMode(f.ApprovalMode),
		AcceptsUnverifiedGuests:  f.AcceptsUnverifiedGuests,
		MinimumNoticeHours:       f.MinimumNoticeHours,
		MaximumLead:              domain.LeadTimeFromMonths(f.MaximumLeadMonths),
		AllowsOvernightStay:      f.AllowsOvernightStay,
		CancellationTier:         domain.CancellationTier(f.CancellationTier),
		PreparationBufferMinutes: f.PreparationBufferMinutes,
		CheckInTime:              types.TimeString(f.CheckInTime),
		CheckOutTime:             types.TimeString(f.CheckOutTime),
		MinimumStayUnits:         f.MinimumStayUnits,
		BlockedWeekdays:          blocked,
	}, nil
}
