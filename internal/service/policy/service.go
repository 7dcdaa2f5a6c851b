package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	policyRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/policy"
	spaceClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/policy/models"
)

// Service сервис для работы с правилами бронирования пространств
type Service struct {
	policyRepo  PolicyRepository
	spaceClient SpaceServiceClient
	now         func() time.Time
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	policyRepo PolicyRepository,
	spaceClient SpaceServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:  policyRepo,
		spaceClient: spaceClient,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// Get получает правила пространства.
// Публичный метод. Если владелец ничего не настроил, возвращаются правила по умолчанию.
func (s *Service) Get(ctx context.Context, spaceID int64) (*models.PolicyResponse, error) {
	s.logger.Info("Get: fetching policy for space=%d", spaceID)

	if _, err := s.getSpace(ctx, "Get", spaceID); err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.GetBySpaceID(ctx, spaceID)
	if errors.Is(err, policyRepo.ErrPolicyNotFound) {
		s.logger.Info("Get: space=%d has no policy, using defaults", spaceID)
		defaults := domain.DefaultPolicy(spaceID)
		return models.FromDomainPolicy(&defaults, true), nil
	}
	if err != nil {
		s.logger.Error("Get: repository error for space=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy, false), nil
}

// Upsert сохраняет правила пространства целиком.
// Доступно только владельцам пространства. Живые бронирования не затрагиваются:
// у каждого свой снимок правил.
func (s *Service) Upsert(ctx context.Context, req *models.PolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: saving policy for space=%d by user=%d", req.SpaceID, req.UserID)

	// 1. Формат полей
	policy, err := req.ToDomainPolicy()
	if err != nil {
		s.logger.Warn("Upsert: invalid policy format for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Права доступа
	if err := s.checkOwner(ctx, "Upsert", req.SpaceID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Бизнес-лимиты сервиса
	if err := validateLimits(policy); err != nil {
		s.logger.Warn("Upsert: limits exceeded for space=%d: %v", req.SpaceID, err)
		return nil, err
	}

	// 4. Согласованность правил
	if err := engine.Validate(*policy); err != nil {
		s.logger.Warn("Upsert: policy for space=%d rejected: %v", req.SpaceID, engine.ValidationReasons(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	saved, err := s.policyRepo.Upsert(ctx, policy, s.now())
	if err != nil {
		s.logger.Error("Upsert: repository error for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved policy for space=%d", req.SpaceID)
	return models.FromDomainPolicy(saved, false), nil
}

// Reset удаляет правила пространства, после чего действуют правила по умолчанию.
// Доступно только владельцам пространства.
func (s *Service) Reset(ctx context.Context, spaceID, userID int64) error {
	s.logger.Info("Reset: resetting policy for space=%d by user=%d", spaceID, userID)

	if err := s.checkOwner(ctx, "Reset", spaceID, userID); err != nil {
		return err
	}

	if err := s.policyRepo.Delete(ctx, spaceID); err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Reset: space=%d has no policy", spaceID)
			return ErrPolicyNotFound
		}
		s.logger.Error("Reset: repository error for space=%d: %v", spaceID, err)
		return fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reset: policy for space=%d removed", spaceID)
	return nil
}

func (s *Service) getSpace(ctx context.Context, op string, spaceID int64) (*spaceClient.Space, error) {
	space, err := s.spaceClient.GetSpace(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceClient.ErrSpaceNotFound) {
			s.logger.Warn("%s: space id=%d not found", op, spaceID)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("%s: failed to get space id=%d: %v", op, spaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}
	return space, nil
}

func (s *Service) checkOwner(ctx context.Context, op string, spaceID, userID int64) error {
	space, err := s.getSpace(ctx, op, spaceID)
	if err != nil {
		return err
	}
	if !space.IsOwner(userID) {
		s.logger.Warn("%s: user=%d is not an owner of space=%d", op, userID, spaceID)
		return ErrAccessDenied
	}
	return nil
}

// validateLimits проверяет верхние границы, которые движок не ограничивает
func validateLimits(p *domain.BookingPolicy) error {
	if p.MinimumNoticeHours > domain.MaxMinimumNoticeHours {
		return fmt.Errorf("%w: minimumNoticeHours must not exceed %d", ErrInvalidInput, domain.MaxMinimumNoticeHours)
	}
	if months, bounded := p.MaximumLead.Months(); bounded && months > domain.MaxLeadMonths {
		return fmt.Errorf("%w: maximumLeadMonths must not exceed %d", ErrInvalidInput, domain.MaxLeadMonths)
	}
	if p.PreparationBufferMinutes > domain.MaxPreparationBufferMinutes {
		return fmt.Errorf("%w: preparationBufferMinutes must not exceed %d", ErrInvalidInput, domain.MaxPreparationBufferMinutes)
	}
	if p.MinimumStayUnits > domain.MaxMinimumStayUnits {
		return fmt.Errorf("%w: minimumStayUnits must not exceed %d", ErrInvalidInput, domain.MaxMinimumStayUnits)
	}
	return nil
}
