package review_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ReservationID == uuid.Nil {
		return fmt.Errorf("%w: reservationID is required", ErrInvalidInput)
	}

	switch req.Decision {
	case DecisionApprove, DecisionReject:
	default:
		return fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, req.Decision)
	}

	if utf8.RuneCountInString(req.Reason) > domain.MaxRejectionReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}

	return nil
}
