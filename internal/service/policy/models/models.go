package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// Request модели

// PolicyRequest запрос на сохранение правил пространства.
// Все поля обязательны: правила заменяются целиком.
type PolicyRequest struct {
	UserID                   int64    `json:"-"`
	SpaceID                  int64    `json:"-"`
	ApprovalMode             string   `json:"approvalMode"` // instant | manual
	AcceptsUnverifiedGuests  bool     `json:"acceptsUnverifiedGuests"`
	MinimumNoticeHours       int      `json:"minimumNoticeHours"`
	MaximumLeadMonths        *int     `json:"maximumLeadMonths"` // null = без ограничения
	AllowsOvernightStay      bool     `json:"allowsOvernightStay"`
	CancellationTier         string   `json:"cancellationTier"` // flexible | moderate | strict
	PreparationBufferMinutes int      `json:"preparationBufferMinutes"`
	CheckInTime              string   `json:"checkInTime"`      // HH:MM
	CheckOutTime             string   `json:"checkOutTime"`     // HH:MM
	MinimumStayUnits         int      `json:"minimumStayUnits"` // часы или ночи
	BlockedWeekdays          []string `json:"blockedWeekdays"`  // ["SUNDAY", ...]
}

// ToDomainPolicy конвертирует запрос в domain модель. Ошибка - только нераспознанный
// день недели; время заезда/выезда и остальную согласованность проверяет движок.
func (r *PolicyRequest) ToDomainPolicy() (*domain.BookingPolicy, error) {
	checkIn := parseTime(r.CheckInTime)
	checkOut := parseTime(r.CheckOutTime)

	blocked, err := domain.ParseWeekdaySet(r.BlockedWeekdays)
	if err != nil {
		return nil, fmt.Errorf("blockedWeekdays: %w", err)
	}

	return &domain.BookingPolicy{
		SpaceID:                  r.SpaceID,
		ApprovalMode:             domain.ApprovalMode(r.ApprovalMode),
		AcceptsUnverifiedGuests:  r.AcceptsUnverifiedGuests,
		MinimumNoticeHours:       r.MinimumNoticeHours,
		MaximumLead:              domain.LeadTimeFromMonths(r.MaximumLeadMonths),
		AllowsOvernightStay:      r.AllowsOvernightStay,
		CancellationTier:         domain.CancellationTier(r.CancellationTier),
		PreparationBufferMinutes: r.PreparationBufferMinutes,
		CheckInTime:              checkIn,
		CheckOutTime:             checkOut,
		MinimumStayUnits:         r.MinimumStayUnits,
		BlockedWeekdays:          blocked,
	}, nil
}

// parseTime нормализует "HH:MM:SS" к "HH:MM"; нераспознанное значение передаётся как есть
func parseTime(s string) types.TimeString {
	if ts, err := types.NewTimeStringFromString(s); err == nil {
		return ts
	}
	return types.TimeString(strings.TrimSpace(s))
}

// Response модели

// PolicyResponse ответ с правилами пространства
type PolicyResponse struct {
	SpaceID                  int64      `json:"spaceId"`
	IsDefault                bool       `json:"isDefault"` // правила не настроены владельцем
	ApprovalMode             string     `json:"approvalMode"`
	AcceptsUnverifiedGuests  bool       `json:"acceptsUnverifiedGuests"`
	MinimumNoticeHours       int        `json:"minimumNoticeHours"`
	MaximumLeadMonths        *int       `json:"maximumLeadMonths"`
	AllowsOvernightStay      bool       `json:"allowsOvernightStay"`
	StayUnit                 string     `json:"stayUnit"`
	CancellationTier         string     `json:"cancellationTier"`
	PreparationBufferMinutes int        `json:"preparationBufferMinutes"`
	CheckInTime              string     `json:"checkInTime"`
	CheckOutTime             string     `json:"checkOutTime"`
	MinimumStayUnits         int        `json:"minimumStayUnits"`
	BlockedWeekdays          []string   `json:"blockedWeekdays"`
	CreatedAt                *time.Time `json:"createdAt,omitempty"`
	UpdatedAt                *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.BookingPolicy, isDefault bool) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		SpaceID:                  p.SpaceID,
		IsDefault:                isDefault,
		ApprovalMode:             string(p.ApprovalMode),
		AcceptsUnverifiedGuests:  p.AcceptsUnverifiedGuests,
		MinimumNoticeHours:       p.MinimumNoticeHours,
		MaximumLeadMonths:        p.MaximumLead.MonthsPtr(),
		AllowsOvernightStay:      p.AllowsOvernightStay,
		StayUnit:                 p.StayUnit(),
		CancellationTier:         string(p.CancellationTier),
		PreparationBufferMinutes: p.PreparationBufferMinutes,
		CheckInTime:              p.CheckInTime.String(),
		CheckOutTime:             p.CheckOutTime.String(),
		MinimumStayUnits:         p.MinimumStayUnits,
		BlockedWeekdays:          p.BlockedWeekdays.Labels(),
	}

	if !isDefault {
		createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
