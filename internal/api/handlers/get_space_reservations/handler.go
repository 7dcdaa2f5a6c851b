package get_space_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/ptr"
)

const (
	msgInvalidSpaceID = "некорректный ID пространства"
	msgInvalidFilter  = "некорректные параметры фильтра"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgSpaceNotFound  = "пространство не найдено"
	msgForbidden      = "доступ разрешен только владельцу пространства"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/reservations?state=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		h.logger.Warn("GET /spaces/{spaceId}/reservations - Invalid space ID: %s", mux.Vars(r)["spaceId"])
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /spaces/{spaceId}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetSpaceReservationsRequest{UserID: userID, SpaceID: spaceID}

	query := r.URL.Query()
	if state := query.Get("state"); state != "" {
		req.State = ptr.Ptr(state)
	}
	if req.From, err = parseQueryTime(query.Get("from")); err != nil {
		h.logger.Warn("GET /spaces/{spaceId}/reservations - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}
	if req.To, err = parseQueryTime(query.Get("to")); err != nil {
		h.logger.Warn("GET /spaces/{spaceId}/reservations - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetSpaceReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{spaceId}/reservations - Invalid filter: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		case errors.Is(err, reservations.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{spaceId}/reservations - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /spaces/{spaceId}/reservations - Access denied: space_id=%d, user_id=%d", spaceID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /spaces/{spaceId}/reservations - Failed to list reservations: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{spaceId}/reservations - Listed: space_id=%d, count=%d", spaceID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQueryTime принимает "2006-01-02T15:04" или дату "2006-01-02"; пустое значение - nil
func parseQueryTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(domain.DateTimeFormat, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
