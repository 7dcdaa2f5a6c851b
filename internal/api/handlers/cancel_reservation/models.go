package cancel_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cancelReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/cancel_reservation"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	ID               uuid.UUID       `json:"id"`
	State            string          `json:"state"`
	CancellationTier string          `json:"cancellationTier"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	RefundAmount     decimal.Decimal `json:"refundAmount"`
	CancelledAt      string          `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelResponse {
	return &CancelResponse{
		ID:               resp.ID,
		State:            string(resp.State),
		CancellationTier: string(resp.CancellationTier),
		AmountPaid:       resp.AmountPaid,
		RefundAmount:     resp.RefundAmount,
		CancelledAt:      resp.CancelledAt.Format(time.RFC3339),
	}
}
