package review_reservation

import (
	"context"

	reviewReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/review_reservation"
)

type ReviewReservationUseCase interface {
	Execute(ctx context.Context, req *reviewReservation.Request) (*reviewReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
