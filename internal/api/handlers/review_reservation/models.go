package review_reservation

import (
	"time"

	"github.com/google/uuid"

	reviewReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/review_reservation"
)

// RejectRequest тело запроса на отклонение (опционально)
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ReviewResponse HTTP response model
type ReviewResponse struct {
	ID              uuid.UUID `json:"id"`
	State           string    `json:"state"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	ResolvedAt      *string   `json:"resolvedAt,omitempty"`
	UpdatedAt       string    `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reviewReservation.Response) *ReviewResponse {
	out := &ReviewResponse{
		ID:              resp.ID,
		State:           string(resp.State),
		RejectionReason: resp.RejectionReason,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.ResolvedAt != nil {
		resolved := resp.ResolvedAt.Format(time.RFC3339)
		out.ResolvedAt = &resolved
	}
	return out
}
