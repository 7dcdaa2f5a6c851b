package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	policyRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/policy"
	spaceClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
	userClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	policyRepo      PolicyRepository
	spaceClient     SpaceServiceClient
	userClient      UserServiceClient
	locker          SpaceLocker
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	newID           func() uuid.UUID
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	policyRepo PolicyRepository,
	spaceClient SpaceServiceClient,
	userClient UserServiceClient,
	locker SpaceLocker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policyRepo:      policyRepo,
		spaceClient:     spaceClient,
		userClient:      userClient,
		locker:          locker,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		newID:           uuid.New,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Допуск выполняется дважды: сначала без блокировки (быстрый отказ), затем в
// критической секции пространства (мьютекс процесса + сериализуемая транзакция с
// advisory-блокировкой). Если заявка прошла первую проверку, а во второй получила
// OVERLAP, значит её опередило параллельное бронирование: возвращается CONFLICT.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: guest=%d, space=%d, start=%s, end=%s",
		req.GuestID, req.SpaceID, req.Start.Format(domain.DateTimeFormat), req.End.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем существование пространства
	if _, err := uc.spaceClient.GetSpace(ctx, req.SpaceID); err != nil {
		if errors.Is(err, spaceClient.ErrSpaceNotFound) {
			uc.logger.Warn("CreateReservation: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 3. Статус проверки гостя (недоступность UserService = непроверенный гость)
	verified, err := uc.userClient.IsVerified(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: guest id=%d not found", req.GuestID)
			return nil, ErrGuestNotFound
		}
		uc.logger.Error("CreateReservation: failed to get verification for guest id=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: failed to get guest verification: %v", ErrInternal, err)
	}

	request := domain.ReservationRequest{
		SpaceID:       req.SpaceID,
		GuestID:       req.GuestID,
		Start:         req.Start,
		End:           req.End,
		CreatedAt:     now,
		GuestVerified: verified,
		AmountPaid:    req.AmountPaid,
	}
	id := uc.newID()

	// 4. Предварительный допуск без блокировки
	if _, err := uc.admit(ctx, id, request, now); err != nil {
		uc.recordOutcome(err)
		return nil, err
	}

	// 5. Критическая секция пространства
	unlock := uc.locker.Lock(req.SpaceID)
	defer unlock()

	var created *domain.Reservation
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.LockSpace(txCtx, req.SpaceID); err != nil {
			uc.logger.Error("CreateReservation: failed to lock space id=%d: %v", req.SpaceID, err)
			return fmt.Errorf("%w: failed to lock space: %w", ErrInternal, err)
		}

		reservation, err := uc.admit(txCtx, id, request, now)
		if errors.Is(err, engine.ErrOverlap) {
			uc.logger.Warn("CreateReservation: space id=%d lost admission race: %v", req.SpaceID, err)
			return fmt.Errorf("%w: interval taken by a concurrent reservation", engine.ErrConflict)
		}
		if err != nil {
			return err
		}

		if err := uc.reservationRepo.Create(txCtx, reservation); err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		created = reservation
		return nil
	})

	if txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("CreateReservation: serialization retries exhausted for space id=%d", req.SpaceID)
		err = fmt.Errorf("%w: concurrent update of space %d", engine.ErrConflict, req.SpaceID)
	}
	if err != nil {
		uc.recordOutcome(err)
		return nil, err
	}

	uc.metrics.RecordAdmission("admitted")
	uc.logger.Info("CreateReservation: created reservation id=%s, state=%s", created.ID, created.State)

	return toResponse(created), nil
}

// admit загружает правила и подтверждённые интервалы и прогоняет допуск движка
func (uc *UseCase) admit(ctx context.Context, id uuid.UUID, request domain.ReservationRequest, now time.Time) (*domain.Reservation, error) {
	policy, err := uc.loadPolicy(ctx, request.SpaceID)
	if err != nil {
		return nil, err
	}

	intervals, err := uc.reservationRepo.ListConfirmedIntervals(ctx, request.SpaceID, now.Add(-policy.PreparationBuffer()))
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list intervals for space id=%d: %v", request.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to list intervals: %w", ErrInternal, err)
	}

	reservation, err := engine.NewReservation(id, request, *policy, intervals, now)
	if err != nil {
		if engine.IsRejection(err) {
			uc.logger.Warn("CreateReservation: rejected guest=%d space=%d: %v", request.GuestID, request.SpaceID, err)
			return nil, err
		}
		uc.logger.Error("CreateReservation: engine failure for space id=%d: %v", request.SpaceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return reservation, nil
}

func (uc *UseCase) loadPolicy(ctx context.Context, spaceID int64) (*domain.BookingPolicy, error) {
	policy, err := uc.policyRepo.GetBySpaceID(ctx, spaceID)
	if errors.Is(err, policyRepo.ErrPolicyNotFound) {
		defaults := domain.DefaultPolicy(spaceID)
		return &defaults, nil
	}
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get policy for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
	}
	return policy, nil
}

func (uc *UseCase) recordOutcome(err error) {
	if reason, ok := engine.ReasonOf(err); ok {
		uc.metrics.RecordAdmission(string(reason))
		return
	}
	uc.metrics.RecordAdmission("error")
}
