package review_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/txmanager"
)

// UseCase use case для рассмотрения заявки владельцем пространства
type UseCase struct {
	reservationRepo ReservationRepository
	spaceClient     SpaceServiceClient
	locker          SpaceLocker
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	spaceClient SpaceServiceClient,
	locker SpaceLocker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		spaceClient:     spaceClient,
		locker:          locker,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute подтверждает или отклоняет заявку.
//
// Подтверждение повторно проверяет допуск по текущим подтверждённым интервалам в
// критической секции пространства. Если проверка не прошла, заявка сохраняется
// отклонённой с причиной CONFLICT и возвращается engine.ErrConflict. Подтверждение
// после истечения срока рассмотрения переводит заявку в expired и возвращает
// INVALID_TRANSITION. В обоих случаях новое состояние фиксируется в БД. Отклонить
// заявку можно в любой момент, пока она на рассмотрении.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReviewReservation: user=%d, reservation=%s, decision=%s", req.UserID, req.ReservationID, req.Decision)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReviewReservation: validation failed: %v", err)
		return nil, err
	}

	// 1. Находим заявку, чтобы узнать пространство
	current, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, uc.mapRepoError("GetByID", err)
	}

	// 2. Решения принимает только владелец пространства
	owner, err := uc.spaceClient.IsOwner(ctx, current.SpaceID, req.UserID)
	if err != nil {
		uc.logger.Error("ReviewReservation: failed to check owner of space id=%d: %v", current.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to check space owner: %v", ErrInternal, err)
	}
	if !owner {
		uc.logger.Warn("ReviewReservation: user=%d is not an owner of space id=%d", req.UserID, current.SpaceID)
		return nil, ErrForbidden
	}

	unlock := uc.locker.Lock(current.SpaceID)
	defer unlock()

	var (
		result      *domain.Reservation
		from        domain.ReservationState
		decisionErr error
	)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.LockSpace(txCtx, current.SpaceID); err != nil {
			uc.logger.Error("ReviewReservation: failed to lock space id=%d: %v", current.SpaceID, err)
			return fmt.Errorf("%w: failed to lock space: %w", ErrInternal, err)
		}

		// Перечитываем под блокировкой: состояние могло измениться
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			return uc.mapRepoError("GetByID", err)
		}

		now := uc.timeProvider.Now()
		from = reservation.State

		decisionErr = uc.decide(txCtx, reservation, req, now)
		if decisionErr != nil && !engine.IsRejection(decisionErr) {
			return decisionErr
		}

		// Переход мог произойти и при ошибке решения (CONFLICT, истечение срока)
		if reservation.State != from {
			if err := uc.reservationRepo.UpdateState(txCtx, reservation, from); err != nil {
				return uc.mapRepoError("UpdateState", err)
			}
		}

		result = reservation
		return nil
	})
	if txmanager.IsSerializationFailure(err) {
		// Решение не сохранено: заявка остаётся на рассмотрении, владелец может повторить
		uc.logger.Warn("ReviewReservation: serialization retries exhausted for space id=%d", current.SpaceID)
		return nil, fmt.Errorf("%w: concurrent update of space %d", engine.ErrConflict, current.SpaceID)
	}
	if err != nil {
		return nil, err
	}

	if result.State != from {
		uc.metrics.RecordTransition(string(from), string(result.State))
	}

	if decisionErr != nil {
		uc.logger.Warn("ReviewReservation: reservation=%s %s refused, state=%s: %v",
			req.ReservationID, req.Decision, result.State, decisionErr)
		return toResponse(result), decisionErr
	}

	uc.logger.Info("ReviewReservation: reservation=%s is now %s", result.ID, result.State)
	return toResponse(result), nil
}

// decide применяет решение к заявке. Отказ движка транзакцию не откатывает:
// заявка к этому моменту уже могла перейти в rejected или expired.
func (uc *UseCase) decide(ctx context.Context, reservation *domain.Reservation, req *Request, now time.Time) error {
	if req.Decision == DecisionReject {
		return engine.Reject(reservation, req.Reason, now)
	}

	policy := reservation.PolicySnapshot
	intervals, err := uc.reservationRepo.ListConfirmedIntervals(ctx, reservation.SpaceID, now.Add(-policy.PreparationBuffer()))
	if err != nil {
		uc.logger.Error("ReviewReservation: failed to list intervals for space id=%d: %v", reservation.SpaceID, err)
		return fmt.Errorf("%w: failed to list intervals: %w", ErrInternal, err)
	}

	err = engine.Approve(reservation, intervals, now)
	if err != nil && !engine.IsRejection(err) {
		uc.logger.Error("ReviewReservation: engine failure for reservation=%s: %v", reservation.ID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return err
}

func (uc *UseCase) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		uc.logger.Warn("ReviewReservation: %s - reservation not found", op)
		return ErrReservationNotFound
	case errors.Is(err, reservationRepo.ErrStateChanged):
		uc.logger.Warn("ReviewReservation: %s - state changed concurrently", op)
		return fmt.Errorf("%w: reservation was updated concurrently", engine.ErrInvalidTransition)
	default:
		uc.logger.Error("ReviewReservation: %s - repository error: %v", op, err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}
