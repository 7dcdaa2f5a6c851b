package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	createReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	got  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{"spaceId":7,"start":"2026-03-04T14:00","end":"2026-03-04T18:00","amountPaid":"150.50"}`

func serve(h *Handler, payload string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, time.March, 4, 14, 0, 0, 0, time.UTC)
	created := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	deadline := created.Add(24 * time.Hour)
	uc := &fakeUseCase{resp: &createReservation.Response{
		ID:             uuid.New(),
		SpaceID:        7,
		GuestID:        100,
		Start:          start,
		End:            start.Add(4 * time.Hour),
		State:          domain.StatePendingReview,
		AmountPaid:     decimal.RequireFromString("150.50"),
		ReviewDeadline: &deadline,
		CreatedAt:      created,
	}}

	rec := serve(NewHandler(uc, nopLogger{}), body, 100)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(100), uc.got.GuestID)
	assert.Equal(t, start, uc.got.Start)
	assert.True(t, decimal.RequireFromString("150.5").Equal(uc.got.AmountPaid))

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pending_review", resp.State)
	assert.Equal(t, "2026-03-04T18:00", resp.End)
	require.NotNil(t, resp.ReviewDeadline)
	assert.Equal(t, "2026-03-03T10:00:00Z", *resp.ReviewDeadline)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"overlap", engine.ErrOverlap, http.StatusConflict, "OVERLAP"},
		{"lost race", fmt.Errorf("%w: taken", engine.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"blocked day", engine.ErrBlockedDay, http.StatusUnprocessableEntity, "BLOCKED_DAY"},
		{"unverified", engine.ErrGuestNotVerified, http.StatusUnprocessableEntity, "GUEST_NOT_VERIFIED"},
		{"space", createReservation.ErrSpaceNotFound, http.StatusNotFound, ""},
		{"input", createReservation.ErrInvalidInput, http.StatusBadRequest, ""},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), body, 100)

			assert.Equal(t, tt.status, rec.Code)
			var resp struct {
				Reason string `json:"reason"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	assert.Equal(t, http.StatusUnauthorized, serve(h, body, 0).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"spaceId":`, 100).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"spaceId":7,"start":"04.03.2026","end":"2026-03-04T18:00"}`, 100).Code)
}
