package update_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/policy"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/policy/models"
)

const (
	msgInvalidSpaceID     = "некорректный ID пространства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры правил"
	msgInvalidPolicy      = "правила бронирования противоречивы"
	msgSpaceNotFound      = "пространство не найдено"
	msgForbidden          = "изменять правила может только владелец пространства"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/spaces/{spaceId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		h.logger.Warn("PUT /spaces/{spaceId}/policy - Invalid space ID: %s", mux.Vars(r)["spaceId"])
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /spaces/{spaceId}/policy - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.PolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /spaces/{spaceId}/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.SpaceID = spaceID

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidPolicy):
			h.logger.Warn("PUT /spaces/{spaceId}/policy - Policy rejected: space_id=%d, error=%v", spaceID, err)
			handlers.RespondValidation(w, err, msgInvalidPolicy)
		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /spaces/{spaceId}/policy - Invalid input: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, policy.ErrSpaceNotFound):
			h.logger.Warn("PUT /spaces/{spaceId}/policy - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)
		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("PUT /spaces/{spaceId}/policy - Access denied: space_id=%d, user_id=%d", spaceID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("PUT /spaces/{spaceId}/policy - Failed to save policy: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /spaces/{spaceId}/policy - Policy saved: space_id=%d, user_id=%d", spaceID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
