package review_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// Decision решение владельца по заявке
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request модель запроса на рассмотрение заявки
type Request struct {
	UserID        int64     // ID владельца (из X-User-ID)
	ReservationID uuid.UUID // ID заявки
	Decision      Decision
	Reason        string // Причина отказа (для reject, опционально)
}

// Response итоговое состояние заявки
type Response struct {
	ID              uuid.UUID
	State           domain.ReservationState
	RejectionReason *string
	ResolvedAt      *time.Time
	UpdatedAt       time.Time
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		State:           r.State,
		RejectionReason: r.RejectionReason,
		ResolvedAt:      r.ResolvedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
