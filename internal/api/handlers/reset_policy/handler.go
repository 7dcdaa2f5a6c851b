package reset_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/policy"
)

const (
	msgInvalidSpaceID = "некорректный ID пространства"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "у пространства нет собственных правил"
	msgForbidden      = "сбрасывать правила может только владелец пространства"
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

// Handle DELETE /api/v1/spaces/{spaceId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		h.logger.Warn("DELETE /spaces/{spaceId}/policy - Invalid space ID: %s", mux.Vars(r)["spaceId"])
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /spaces/{spaceId}/policy - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Reset(r.Context(), spaceID, userID); err != nil {
		switch {
		case errors.Is(err, policy.ErrPolicyNotFound), errors.Is(err, policy.ErrSpaceNotFound):
			h.logger.Warn("DELETE /spaces/{spaceId}/policy - Nothing to reset: space_id=%d, error=%v", spaceID, err)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("DELETE /spaces/{spaceId}/policy - Access denied: space_id=%d, user_id=%d", spaceID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /spaces/{spaceId}/policy - Failed to reset policy: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /spaces/{spaceId}/policy - Policy reset: space_id=%d, user_id=%d", spaceID, userID)
	w.WriteHeader(http.StatusNoContent)
}
