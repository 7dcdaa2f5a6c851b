package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockSpace(ctx context.Context, spaceID int64) error
	Create(ctx context.Context, reservation *domain.Reservation) error
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

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	IsVerified(ctx context.Context, userID int64) (bool, error)
}

// SpaceLocker сериализует допуск бронирований в пределах одного пространства
type SpaceLocker interface {
	Lock(spaceID int64) (unlock func())
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики допуска
type Metrics interface {
	RecordAdmission(outcome string)
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

// RealTimeProvider реальный провайдер времени для production.
// Время пространства хранится как UTC wall-clock.
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
