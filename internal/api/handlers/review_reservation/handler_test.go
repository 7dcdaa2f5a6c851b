package review_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	reviewReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/review_reservation"
)

type fakeUseCase struct {
	got *reviewReservation.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *reviewReservation.Request) (*reviewReservation.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &reviewReservation.Response{ID: req.ReservationID, State: domain.StateRejected, UpdatedAt: time.Now()}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func router(uc *fakeUseCase) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/reservations/{reservationId}/approve", NewApproveHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)
	r.HandleFunc("/reservations/{reservationId}/reject", NewRejectHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_RejectPassesReason(t *testing.T) {
	uc := &fakeUseCase{}
	id := uuid.New()

	rec := post(router(uc), "/reservations/"+id.String()+"/reject", `{"reason":"private event"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reviewReservation.DecisionReject, uc.got.Decision)
	assert.Equal(t, "private event", uc.got.Reason)
	assert.Equal(t, int64(1), uc.got.UserID)
	assert.Equal(t, id, uc.got.ReservationID)
}

func TestHandle_ApproveWithoutBody(t *testing.T) {
	uc := &fakeUseCase{}

	rec := post(router(uc), "/reservations/"+uuid.NewString()+"/approve", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reviewReservation.DecisionApprove, uc.got.Decision)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"conflict", engine.ErrConflict, http.StatusConflict},
		{"expired", engine.ErrInvalidTransition, http.StatusConflict},
		{"forbidden", reviewReservation.ErrForbidden, http.StatusForbidden},
		{"not found", reviewReservation.ErrReservationNotFound, http.StatusNotFound},
		{"internal", reviewReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(router(&fakeUseCase{err: tt.err}), "/reservations/"+uuid.NewString()+"/approve", "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	rec := post(router(&fakeUseCase{}), "/reservations/42/approve", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
