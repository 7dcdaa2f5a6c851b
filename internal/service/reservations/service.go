package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	spaceClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
)

// Service сервис для чтения и обслуживания бронирований
type Service struct {
	reservationRepo ReservationRepository
	spaceClient     SpaceServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	spaceClient SpaceServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		spaceClient:     spaceClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может гость или владелец пространства
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reservation.GuestID != userID {
		if err := s.checkOwner(ctx, "GetByID", reservation.SpaceID, userID); err != nil {
			return nil, err
		}
	}

	return models.FromDomainReservation(reservation), nil
}

// GetGuestReservations получает историю бронирований гостя
// Опционально фильтрует по состоянию
func (s *Service) GetGuestReservations(ctx context.Context, req *models.GetGuestReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetGuestReservations: fetching reservations for guest=%d, state=%v", req.GuestID, req.State)

	filter := domain.ReservationsFilter{GuestID: &req.GuestID}
	if req.State != nil {
		state, err := models.ToDomainState(*req.State)
		if err != nil {
			s.logger.Warn("GetGuestReservations: invalid state=%s for guest=%d", *req.State, req.GuestID)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		filter.State = &state
	}

	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetGuestReservations: repository error for guest=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: GetGuestReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestReservations: fetched %d reservations for guest=%d", len(reservations), req.GuestID)
	return models.FromDomainReservationList(reservations), nil
}

// GetSpaceReservations получает бронирования пространства с фильтрацией
// Доступно только владельцам пространства
func (s *Service) GetSpaceReservations(ctx context.Context, req *models.GetSpaceReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSpaceReservations: fetching reservations for space=%d, user=%d, state=%v",
		req.SpaceID, req.UserID, req.State)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetSpaceReservations: empty period for space=%d", req.SpaceID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSpaceReservations: invalid filter for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if err := s.checkOwner(ctx, "GetSpaceReservations", req.SpaceID, req.UserID); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSpaceReservations: repository error for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: GetSpaceReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpaceReservations: fetched %d reservations for space=%d", len(reservations), req.SpaceID)
	return models.FromDomainReservationList(reservations), nil
}

// Purge удаляет архив: завершённые до before бронирования и подтверждённые,
// чьё пребывание закончилось до before. Используется из bookingctl.
func (s *Service) Purge(ctx context.Context, before time.Time) (int64, error) {
	s.logger.Info("Purge: removing reservations finished before %s", before.Format(domain.DateTimeFormat))

	deleted, err := s.reservationRepo.Purge(ctx, before)
	if err != nil {
		s.logger.Error("Purge: repository error: %v", err)
		return 0, fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Purge: removed %d reservations", deleted)
	return deleted, nil
}

func (s *Service) checkOwner(ctx context.Context, op string, spaceID, userID int64) error {
	owner, err := s.spaceClient.IsOwner(ctx, spaceID, userID)
	if err != nil {
		if errors.Is(err, spaceClient.ErrSpaceNotFound) {
			s.logger.Warn("%s: space id=%d not found", op, spaceID)
			return ErrSpaceNotFound
		}
		s.logger.Error("%s: failed to check owner of space id=%d: %v", op, spaceID, err)
		return fmt.Errorf("%w: failed to check space owner: %v", ErrInternal, err)
	}
	if !owner {
		s.logger.Warn("%s: user=%d is not an owner of space=%d", op, userID, spaceID)
		return ErrAccessDenied
	}
	return nil
}
