package cancel_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	cancelReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/cancel_reservation"
)

type fakeUseCase struct {
	resp *cancelReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context, *cancelReservation.Request) (*cancelReservation.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *fakeUseCase, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/cancel", NewHandler(uc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPost, "/reservations/"+id+"/cancel", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsRefund(t *testing.T) {
	id := uuid.New()
	uc := &fakeUseCase{resp: &cancelReservation.Response{
		ID:               id,
		State:            domain.StateCancelled,
		CancellationTier: domain.TierStrict,
		AmountPaid:       decimal.NewFromInt(1000),
		RefundAmount:     decimal.NewFromInt(500),
		CancelledAt:      time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
	}}

	rec := serve(uc, id.String())

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CancelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.State)
	assert.Equal(t, "strict", resp.CancellationTier)
	assert.True(t, decimal.NewFromInt(500).Equal(resp.RefundAmount))
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"after check-in", engine.ErrPostCheckIn, http.StatusUnprocessableEntity},
		{"not confirmed", engine.ErrInvalidTransition, http.StatusConflict},
		{"forbidden", cancelReservation.ErrForbidden, http.StatusForbidden},
		{"not found", cancelReservation.ErrReservationNotFound, http.StatusNotFound},
		{"internal", cancelReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, uuid.NewString())
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
