package expire_reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListPendingCreatedBefore(ctx context.Context, deadline time.Time, limit uint64) ([]*domain.Reservation, error)
	UpdateState(ctx context.Context, reservation *domain.Reservation, from domain.ReservationState) error
}

// Metrics метрики прохода по просроченным заявкам
type Metrics interface {
	RecordTransition(from, to string)
	RecordExpirySweep(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
