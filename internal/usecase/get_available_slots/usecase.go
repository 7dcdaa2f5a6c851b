package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	policyRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/policy"
	spaceClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
)

// MaxHorizonDays верхняя граница горизонта, которую может запросить клиент
const MaxHorizonDays = 366

// UseCase use case для получения доступных слотов пространства
type UseCase struct {
	reservationRepo ReservationRepository
	policyRepo      PolicyRepository
	spaceClient     SpaceServiceClient
	horizonDays     int
	maxSlots        int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. horizonDays и maxSlots - значения
// по умолчанию из конфигурации; maxSlots также ограничивает запрошенный limit.
func NewUseCase(
	reservationRepo ReservationRepository,
	policyRepo PolicyRepository,
	spaceClient SpaceServiceClient,
	horizonDays int,
	maxSlots int,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policyRepo:      policyRepo,
		spaceClient:     spaceClient,
		horizonDays:     horizonDays,
		maxSlots:        maxSlots,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute перечисляет свободные окна пространства в хронологическом порядке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: space=%d, horizon=%d, limit=%d", req.SpaceID, req.HorizonDays, req.Limit)

	if err := validateRequest(req, MaxHorizonDays, uc.maxSlots); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.spaceClient.GetSpace(ctx, req.SpaceID); err != nil {
		if errors.Is(err, spaceClient.ErrSpaceNotFound) {
			uc.logger.Warn("GetAvailableSlots: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	usesDefaults := false
	policy, err := uc.policyRepo.GetBySpaceID(ctx, req.SpaceID)
	if errors.Is(err, policyRepo.ErrPolicyNotFound) {
		defaults := domain.DefaultPolicy(req.SpaceID)
		policy, usesDefaults = &defaults, true
	} else if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get policy for space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	intervals, err := uc.reservationRepo.ListConfirmedIntervals(ctx, req.SpaceID, now.Add(-policy.PreparationBuffer()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list intervals for space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to list intervals: %v", ErrInternal, err)
	}

	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = uc.horizonDays
	}
	limit := req.Limit
	if limit == 0 {
		limit = uc.maxSlots
	}

	slots := engine.Slots(*policy, intervals, now, horizon, limit)

	resp := &Response{
		SpaceID:      req.SpaceID,
		UsesDefaults: usesDefaults,
		StayUnit:     policy.StayUnit(),
		Slots:        make([]Slot, len(slots)),
		GeneratedAt:  now,
	}
	for i, s := range slots {
		units := int(s.Duration().Hours())
		if policy.AllowsOvernightStay {
			units = s.Nights()
		}
		resp.Slots[i] = Slot{Start: s.Start, End: s.End, Units: units}
	}

	uc.logger.Info("GetAvailableSlots: space=%d, found %d slots", req.SpaceID, len(resp.Slots))
	return resp, nil
}
