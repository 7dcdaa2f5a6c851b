package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListConfirmedIntervals(ctx context.Context, spaceID int64, endingAfter time.Time) ([]domain.ConfirmedInterval, error)
}

// PolicyRepository интерфейс репозитория правил бронирования
type PolicyRepository interface {
	GetBySpaceID(ctx context.Context, spaceID int64) (*domain.BookingPolicy, error)
}

// SpaceServiceClient интерфейс клиента для SpaceService
type SpaceServiceClient interface {
	GetSpace(ctx context.Context, spaceID int64) (*spaceservice.Space, error)
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
