package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии в фильтре
	ErrInvalidState = errors.New("invalid reservation state")
)

// Request модели

// GetGuestReservationsRequest запрос на получение бронирований гостя
type GetGuestReservationsRequest struct {
	GuestID int64
	State   *string
}

// GetSpaceReservationsRequest запрос на получение бронирований пространства
type GetSpaceReservationsRequest struct {
	UserID  int64
	SpaceID int64
	State   *string    // Фильтр по состоянию (опционально)
	From    *time.Time // Начало периода по дате заезда (опционально)
	To      *time.Time // Конец периода по дате заезда (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSpaceReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		SpaceID: r.SpaceID,
		From:    r.From,
		To:      r.To,
	}

	if r.State != nil {
		state, err := ToDomainState(*r.State)
		if err != nil {
			return filter, err
		}
		filter.State = &state
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID               uuid.UUID        `json:"id"`
	SpaceID          int64            `json:"spaceId"`
	GuestID          int64            `json:"guestId"`
	Start            string           `json:"start"` // "2026-03-04T14:00"
	End              string           `json:"end"`
	State            string           `json:"state"`
	GuestVerified    bool             `json:"guestVerified"`
	CancellationTier string           `json:"cancellationTier"`
	AmountPaid       decimal.Decimal  `json:"amountPaid"`
	RefundAmount     *decimal.Decimal `json:"refundAmount,omitempty"`
	RejectionReason  *string          `json:"rejectionReason,omitempty"`
	ReviewDeadline   *time.Time       `json:"reviewDeadline,omitempty"` // только для заявок на рассмотрении
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	ResolvedAt       *time.Time       `json:"resolvedAt,omitempty"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:               r.ID,
		SpaceID:          r.SpaceID,
		GuestID:          r.GuestID,
		Start:            r.Start.Format(domain.DateTimeFormat),
		End:              r.End.Format(domain.DateTimeFormat),
		State:            string(r.State),
		GuestVerified:    r.GuestVerified,
		CancellationTier: string(r.PolicySnapshot.CancellationTier),
		AmountPaid:       r.AmountPaid,
		RefundAmount:     r.RefundAmount,
		RejectionReason:  r.RejectionReason,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		ResolvedAt:       r.ResolvedAt,
	}

	if r.IsPending() {
		deadline := r.ReviewDeadline()
		resp.ReviewDeadline = &deadline
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainState конвертирует строку в domain.ReservationState с валидацией
func ToDomainState(state string) (domain.ReservationState, error) {
	s := domain.ReservationState(state)
	if !s.IsValid() {
		return "", ErrInvalidState
	}
	return s, nil
}
