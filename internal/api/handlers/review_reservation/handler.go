package review_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	reviewReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/review_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidInput         = "некорректные данные решения"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "рассматривать заявки может только владелец пространства"
	msgRejected             = "решение по заявке невозможно"
)

// Handler обрабатывает approve и reject; решение задаётся при создании
type Handler struct {
	useCase  ReviewReservationUseCase
	decision reviewReservation.Decision
	logger   Logger
}

func NewApproveHandler(useCase ReviewReservationUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, decision: reviewReservation.DecisionApprove, logger: logger}
}

func NewRejectHandler(useCase ReviewReservationUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, decision: reviewReservation.DecisionReject, logger: logger}
}

// Handle POST /api/v1/reservations/{reservationId}/approve
// Handle POST /api/v1/reservations/{reservationId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := "POST /reservations/{id}/" + string(h.decision)

	reservationID, err := uuid.Parse(mux.Vars(r)["reservationId"])
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body RejectRequest
	if h.decision == reviewReservation.DecisionReject && r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &body); err != nil {
			h.logger.Warn("%s - Invalid request body: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &reviewReservation.Request{
		UserID:        userID,
		ReservationID: reservationID,
		Decision:      h.decision,
		Reason:        body.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviewReservation.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: reservation_id=%s, error=%v", route, reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reviewReservation.ErrReservationNotFound):
			h.logger.Warn("%s - Reservation not found: reservation_id=%s", route, reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviewReservation.ErrForbidden):
			h.logger.Warn("%s - Access denied: reservation_id=%s, user_id=%d", route, reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			if handlers.RespondRejection(w, err, msgRejected) {
				h.logger.Warn("%s - Refused: reservation_id=%s, error=%v", route, reservationID, err)
				return
			}
			h.logger.Error("%s - Failed to review reservation: reservation_id=%s, error=%v", route, reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Reservation reviewed: reservation_id=%s, state=%s", route, reservationID, result.State)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
