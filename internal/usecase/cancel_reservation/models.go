package cancel_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	UserID        int64     // ID пользователя (из X-User-ID)
	ReservationID uuid.UUID // ID бронирования
}

// Response результат отмены
type Response struct {
	ID               uuid.UUID
	State            domain.ReservationState
	CancellationTier domain.CancellationTier
	AmountPaid       decimal.Decimal
	RefundAmount     decimal.Decimal
	CancelledAt      time.Time
}
