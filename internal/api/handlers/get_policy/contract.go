package get_policy

import (
	"context"

	"github.com/m04kA/SMC-SpaceBookingService/internal/service/policy/models"
)

type PolicyService interface {
	Get(ctx context.Context, spaceID int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
