package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// ApprovalMode defines how a new reservation request is admitted
type ApprovalMode string

const (
	ApprovalInstant ApprovalMode = "instant"
	ApprovalManual  ApprovalMode = "manual"
)

// IsValid returns true for known approval modes
func (m ApprovalMode) IsValid() bool {
	return m == ApprovalInstant || m == ApprovalManual
}

// CancellationTier is the refund class of a space
type CancellationTier string

const (
	TierFlexible CancellationTier = "flexible"
	TierModerate CancellationTier = "moderate"
	TierStrict   CancellationTier = "strict"
)

// IsValid returns true for known cancellation tiers
func (t CancellationTier) IsValid() bool {
	return t == TierFlexible || t == TierModerate || t == TierStrict
}

// LeadTime is the maximum lead window: either bounded by a number of months or unlimited.
// The zero value is bounded(0), which the policy validator rejects.
type LeadTime struct {
	months    int
	unlimited bool
}

// BoundedLead returns a lead window of the given number of months
func BoundedLead(months int) LeadTime {
	return LeadTime{months: months}
}

// UnlimitedLead returns a lead window without upper bound
func UnlimitedLead() LeadTime {
	return LeadTime{unlimited: true}
}

// LeadTimeFromMonths maps a nullable month count (as stored and transported) to a LeadTime.
// nil means unlimited.
func LeadTimeFromMonths(months *int) LeadTime {
	if months == nil {
		return UnlimitedLead()
	}
	return BoundedLead(*months)
}

// IsUnlimited returns true when there is no upper bound
func (l LeadTime) IsUnlimited() bool {
	return l.unlimited
}

// Months returns the bound and true, or (0, false) when unlimited
func (l LeadTime) Months() (int, bool) {
	if l.unlimited {
		return 0, false
	}
	return l.months, true
}

// MonthsPtr is the nullable form of Months, used by storage and DTOs
func (l LeadTime) MonthsPtr() *int {
	if l.unlimited {
		return nil
	}
	m := l.months
	return &m
}

func (l LeadTime) String() string {
	if l.unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d months", l.months)
}

// MarshalJSON encodes the lead time as a month count or null
func (l LeadTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.MonthsPtr())
}

// UnmarshalJSON decodes a month count or null
func (l *LeadTime) UnmarshalJSON(data []byte) error {
	var months *int
	if err := json.Unmarshal(data, &months); err != nil {
		return err
	}
	*l = LeadTimeFromMonths(months)
	return nil
}

// WeekdaySet is a set of days of week, bit i set for time.Weekday(i)
type WeekdaySet uint8

const allWeekdays WeekdaySet = 1<<7 - 1

// NewWeekdaySet builds a set from weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// ParseWeekdaySet builds a set from labels such as "SUNDAY", "monday" or "tue"
func ParseWeekdaySet(labels []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, label := range labels {
		d, err := ParseWeekday(label)
		if err != nil {
			return 0, err
		}
		s = s.With(d)
	}
	return s, nil
}

// ParseWeekday parses a full or three-letter weekday label, case-insensitive
func ParseWeekday(label string) (time.Weekday, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if l == name || l == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", label)
}

// With returns the set with d added
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

// Contains reports whether d is in the set
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsFull returns true if all seven days are in the set
func (s WeekdaySet) IsFull() bool {
	return s&allWeekdays == allWeekdays
}

// Days returns the set members from Sunday to Saturday
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// Labels returns upper-case labels ("SUNDAY", ...) in weekday order
func (s WeekdaySet) Labels() []string {
	days := s.Days()
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = strings.ToUpper(d.String())
	}
	return labels
}

// MarshalJSON encodes the set as a list of labels
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Labels())
}

// UnmarshalJSON decodes a list of labels
func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	parsed, err := ParseWeekdaySet(labels)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// BookingPolicy is the booking rule set a space owner configures.
// The engine treats it as an immutable value; it is copied into every reservation
// as a snapshot at creation time.
type BookingPolicy struct {
	SpaceID                  int64            `json:"spaceId"`
	ApprovalMode             ApprovalMode     `json:"approvalMode"`
	AcceptsUnverifiedGuests  bool             `json:"acceptsUnverifiedGuests"`
	MinimumNoticeHours       int              `json:"minimumNoticeHours"`
	MaximumLead              LeadTime         `json:"maximumLeadMonths"`
	AllowsOvernightStay      bool             `json:"allowsOvernightStay"`
	CancellationTier         CancellationTier `json:"cancellationTier"`
	PreparationBufferMinutes int              `json:"preparationBufferMinutes"`
	CheckInTime              types.TimeString `json:"checkInTime"`
	CheckOutTime             types.TimeString `json:"checkOutTime"`
	MinimumStayUnits         int              `json:"minimumStayUnits"`
	BlockedWeekdays          WeekdaySet       `json:"blockedWeekdays"`
	CreatedAt                time.Time        `json:"createdAt"`
	UpdatedAt                time.Time        `json:"updatedAt"`
}

// IsManualApproval returns true if requests wait for host review
func (p *BookingPolicy) IsManualApproval() bool {
	return p.ApprovalMode == ApprovalManual
}

// MinimumNotice returns the minimum notice as a duration
func (p *BookingPolicy) MinimumNotice() time.Duration {
	return time.Duration(p.MinimumNoticeHours) * time.Hour
}

// PreparationBuffer returns the preparation buffer as a duration
func (p *BookingPolicy) PreparationBuffer() time.Duration {
	return time.Duration(p.PreparationBufferMinutes) * time.Minute
}

// StayUnit returns the unit minimum stay is measured in
func (p *BookingPolicy) StayUnit() string {
	if p.AllowsOvernightStay {
		return "nights"
	}
	return "hours"
}
