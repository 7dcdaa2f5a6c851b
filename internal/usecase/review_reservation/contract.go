package review_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockSpace(ctx context.Context, spaceID int64) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	UpdateState(ctx context.Context, reservation *domain.Reservation, from domain.ReservationState) error
	ListConfirmedIntervals(ctx context.Context, spaceID int64, endingAfter time.Time) ([]domain.ConfirmedInterval, error)
}

// SpaceServiceClient интерфейс клиента для SpaceService
type SpaceServiceClient interface {
	IsOwner(ctx context.Context, spaceID, userID int64) (bool, error)
}

// SpaceLocker сериализует допуск бронирований в пределах одного пространства
type SpaceLocker interface {
	Lock(spaceID int64) (unlock func())
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики переходов workflow
type Metrics interface {
	RecordTransition(from, to string)
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
