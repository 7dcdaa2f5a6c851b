package get_guest_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
)

type fakeService struct {
	got *models.GetGuestReservationsRequest
	err error
}

func (f *fakeService) GetGuestReservations(_ context.Context, req *models.GetGuestReservationsRequest) (*models.ReservationListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/users/{userId}/reservations", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 42))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OwnReservations(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/users/42/reservations?state=pending_review")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(42), svc.got.GuestID)
	require.NotNil(t, svc.got.State)
	assert.Equal(t, "pending_review", *svc.got.State)
}

func TestHandle_OtherGuest(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/users/43/reservations")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad user id", "/users/x/reservations", nil, http.StatusBadRequest},
		{"bad state", "/users/42/reservations?state=done", reservations.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/users/42/reservations", reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
