package get_guest_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/ptr"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidState  = "некорректное состояние бронирования"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "можно просматривать только свои бронирования"
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

// Handle GET /api/v1/users/{userId}/reservations?state=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	guestID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || guestID <= 0 {
		h.logger.Warn("GET /users/{userId}/reservations - Invalid user ID: %s", mux.Vars(r)["userId"])
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if userID != guestID {
		h.logger.Warn("GET /users/{userId}/reservations - Access denied: user_id=%d, guest_id=%d", userID, guestID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetGuestReservationsRequest{GuestID: guestID}
	if state := r.URL.Query().Get("state"); state != "" {
		req.State = ptr.Ptr(state)
	}

	result, err := h.service.GetGuestReservations(r.Context(), req)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /users/{userId}/reservations - Invalid state: guest_id=%d, error=%v", guestID, err)
			handlers.RespondBadRequest(w, msgInvalidState)
			return
		}
		h.logger.Error("GET /users/{userId}/reservations - Failed to list reservations: guest_id=%d, error=%v", guestID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
