package expire_reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
)

// DefaultBatchSize сколько заявок обрабатывается за один проход
const DefaultBatchSize = 500

// UseCase use case для истечения заявок, не рассмотренных вовремя
type UseCase struct {
	reservationRepo ReservationRepository
	metrics         Metrics
	batchSize       uint64
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		metrics:         metrics,
		batchSize:       DefaultBatchSize,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит в expired все заявки, срок рассмотрения которых истёк, и
// возвращает их количество. Заявка, решённая параллельно, пропускается.
// Повторный вызов ничего не меняет.
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()

	pending, err := uc.reservationRepo.ListPendingCreatedBefore(ctx, now.Add(-domain.ReviewTimeout), uc.batchSize)
	if err != nil {
		uc.logger.Error("ExpireReservations: failed to list pending reservations: %v", err)
		uc.metrics.RecordExpirySweep("error")
		return 0, fmt.Errorf("%w: failed to list pending reservations: %v", ErrInternal, err)
	}

	expired := 0
	for _, reservation := range pending {
		if err := ctx.Err(); err != nil {
			uc.metrics.RecordExpirySweep("error")
			return expired, err
		}

		if !engine.ExpireIfDue(reservation, now) {
			continue
		}

		err := uc.reservationRepo.UpdateState(ctx, reservation, domain.StatePendingReview)
		if errors.Is(err, reservationRepo.ErrStateChanged) {
			uc.logger.Info("ExpireReservations: reservation=%s was resolved concurrently, skipping", reservation.ID)
			continue
		}
		if err != nil {
			uc.logger.Error("ExpireReservations: failed to expire reservation=%s: %v", reservation.ID, err)
			uc.metrics.RecordExpirySweep("error")
			return expired, fmt.Errorf("%w: failed to expire reservation %s: %v", ErrInternal, reservation.ID, err)
		}

		uc.metrics.RecordTransition(string(domain.StatePendingReview), string(domain.StateExpired))
		expired++
	}

	uc.metrics.RecordExpirySweep("ok")
	if expired > 0 {
		uc.logger.Info("ExpireReservations: expired %d reservations", expired)
	}
	return expired, nil
}
