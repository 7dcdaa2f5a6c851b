package update_policy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/policy"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/policy/models"
)

type fakeService struct {
	got *models.PolicyRequest
	err error
}

func (f *fakeService) Upsert(_ context.Context, req *models.PolicyRequest) (*models.PolicyResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PolicyResponse{SpaceID: req.SpaceID, ApprovalMode: req.ApprovalMode}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"approvalMode": "instant",
	"acceptsUnverifiedGuests": true,
	"minimumNoticeHours": 2,
	"maximumLeadMonths": null,
	"allowsOvernightStay": false,
	"cancellationTier": "flexible",
	"preparationBufferMinutes": 30,
	"checkInTime": "09:00",
	"checkOutTime": "21:00",
	"minimumStayUnits": 1,
	"blockedWeekdays": ["SUNDAY"]
}`

func serve(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/spaces/{spaceId}/policy", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Saves(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/spaces/9/policy", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(5), svc.got.UserID)
	assert.Equal(t, int64(9), svc.got.SpaceID)
	assert.Nil(t, svc.got.MaximumLeadMonths)
	assert.Equal(t, []string{"SUNDAY"}, svc.got.BlockedWeekdays)
}

func TestHandle_InvalidPolicyListsReasons(t *testing.T) {
	bad := domain.DefaultPolicy(9)
	bad.MinimumStayUnits = 0
	bad.PreparationBufferMinutes = -5
	validationErr := engine.Validate(bad)
	require.Error(t, validationErr)

	svc := &fakeService{err: fmt.Errorf("%w: %w", policy.ErrInvalidPolicy, validationErr)}

	rec := serve(svc, "/spaces/9/policy", validBody)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []engine.Reason{engine.ReasonBadStayMinimum, engine.ReasonBadBuffer}, resp.Reasons)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		status int
	}{
		{"bad space id", "/spaces/x/policy", validBody, nil, http.StatusBadRequest},
		{"unknown field", "/spaces/9/policy", `{"color":"red"}`, nil, http.StatusBadRequest},
		{"invalid input", "/spaces/9/policy", validBody, policy.ErrInvalidInput, http.StatusBadRequest},
		{"space not found", "/spaces/9/policy", validBody, policy.ErrSpaceNotFound, http.StatusNotFound},
		{"not owner", "/spaces/9/policy", validBody, policy.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/spaces/9/policy", validBody, policy.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
