package create_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	GuestID    int64           // ID гостя (из X-User-ID)
	SpaceID    int64           // ID пространства
	Start      time.Time       // Заезд, локальное время пространства
	End        time.Time       // Выезд, локальное время пространства
	AmountPaid decimal.Decimal // Оплаченная сумма
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             uuid.UUID
	SpaceID        int64
	GuestID        int64
	Start          time.Time
	End            time.Time
	State          domain.ReservationState
	AmountPaid     decimal.Decimal
	ReviewDeadline *time.Time // Только для заявок на рассмотрении
	CreatedAt      time.Time
}

func toResponse(r *domain.Reservation) *Response {
	resp := &Response{
		ID:         r.ID,
		SpaceID:    r.SpaceID,
		GuestID:    r.GuestID,
		Start:      r.Start,
		End:        r.End,
		State:      r.State,
		AmountPaid: r.AmountPaid,
		CreatedAt:  r.CreatedAt,
	}
	if r.IsPending() {
		deadline := r.ReviewDeadline()
		resp.ReviewDeadline = &deadline
	}
	return resp
}
