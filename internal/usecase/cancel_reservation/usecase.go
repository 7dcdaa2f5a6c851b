package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
)

// UseCase use case для отмены подтверждённого бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	spaceClient     SpaceServiceClient
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	spaceClient SpaceServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		spaceClient:     spaceClient,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет бронирование и рассчитывает возврат по тарифу отмены из снимка правил.
// Отменить может гость или владелец пространства. Отмена после заезда возвращает
// POST_CHECK_IN, бронирование остаётся подтверждённым.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: user=%d, reservation=%s", req.UserID, req.ReservationID)

	if req.UserID <= 0 || req.ReservationID == uuid.Nil {
		uc.logger.Warn("CancelReservation: invalid input user=%d, reservation=%s", req.UserID, req.ReservationID)
		return nil, fmt.Errorf("%w: userID and reservationID are required", ErrInvalidInput)
	}

	var resp *Response
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			return uc.mapRepoError("GetByID", err)
		}

		if err := uc.checkAccess(txCtx, reservation, req.UserID); err != nil {
			return err
		}

		now := uc.timeProvider.Now()
		from := reservation.State

		refund, err := engine.Cancel(reservation, now)
		if err != nil {
			if engine.IsRejection(err) {
				uc.logger.Warn("CancelReservation: reservation=%s not cancelled: %v", reservation.ID, err)
				return err
			}
			uc.logger.Error("CancelReservation: engine failure for reservation=%s: %v", reservation.ID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if err := uc.reservationRepo.UpdateState(txCtx, reservation, from); err != nil {
			return uc.mapRepoError("UpdateState", err)
		}

		tier := reservation.PolicySnapshot.CancellationTier
		uc.metrics.RecordTransition(string(from), string(reservation.State))
		uc.metrics.ObserveRefund(string(tier), refund.InexactFloat64())

		resp = &Response{
			ID:               reservation.ID,
			State:            reservation.State,
			CancellationTier: tier,
			AmountPaid:       reservation.AmountPaid,
			RefundAmount:     refund,
			CancelledAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: reservation=%s cancelled, refund=%s of %s",
		resp.ID, resp.RefundAmount.StringFixed(domain.RefundMinorUnitDigits), resp.AmountPaid.StringFixed(domain.RefundMinorUnitDigits))
	return resp, nil
}

func (uc *UseCase) checkAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.GuestID == userID {
		return nil
	}

	owner, err := uc.spaceClient.IsOwner(ctx, reservation.SpaceID, userID)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to check owner of space id=%d: %v", reservation.SpaceID, err)
		return fmt.Errorf("%w: failed to check space owner: %v", ErrInternal, err)
	}
	if !owner {
		uc.logger.Warn("CancelReservation: user=%d has no access to reservation=%s", userID, reservation.ID)
		return ErrForbidden
	}
	return nil
}

func (uc *UseCase) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		uc.logger.Warn("CancelReservation: %s - reservation not found", op)
		return ErrReservationNotFound
	case errors.Is(err, reservationRepo.ErrStateChanged):
		uc.logger.Warn("CancelReservation: %s - state changed concurrently", op)
		return fmt.Errorf("%w: reservation was updated concurrently", engine.ErrInvalidTransition)
	default:
		uc.logger.Error("CancelReservation: %s - repository error: %v", op, err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}
