package create_reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID    int64           `json:"spaceId"`
	Start      string          `json:"start"` // "2026-03-04T14:00", локальное время пространства
	End        string          `json:"end"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             uuid.UUID       `json:"id"`
	SpaceID        int64           `json:"spaceId"`
	GuestID        int64           `json:"guestId"`
	Start          string          `json:"start"`
	End            string          `json:"end"`
	State          string          `json:"state"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	ReviewDeadline *string         `json:"reviewDeadline,omitempty"`
	CreatedAt      string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(guestID int64) (*createReservation.Request, error) {
	start, err := time.Parse(domain.DateTimeFormat, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := time.Parse(domain.DateTimeFormat, r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &createReservation.Request{
		GuestID:    guestID,
		SpaceID:    r.SpaceID,
		Start:      start,
		End:        end,
		AmountPaid: r.AmountPaid,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:         resp.ID,
		SpaceID:    resp.SpaceID,
		GuestID:    resp.GuestID,
		Start:      resp.Start.Format(domain.DateTimeFormat),
		End:        resp.End.Format(domain.DateTimeFormat),
		State:      string(resp.State),
		AmountPaid: resp.AmountPaid,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.ReviewDeadline != nil {
		deadline := resp.ReviewDeadline.Format(time.RFC3339)
		out.ReviewDeadline = &deadline
	}
	return out
}
