package create_agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/agents"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct{ err error }

func (s stubService) Create(_ context.Context, _ domain.Caller, req *agents.CreateAgentRequest) (*domain.Agent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Agent{ID: 3, Email: req.Email, PlanTier: req.PlanTier, MonthlyBookingLimit: req.MonthlyBookingLimit}, nil
}

func TestHandler_Handle(t *testing.T) {
	const body = `{"email":"guest@studio.com","name":"Guest","planTier":"Guest","monthlyBookingLimit":8}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "not admin", err: agents.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "duplicate", err: agents.ErrAgentAlreadyExists, wantStatus: http.StatusConflict},
		{name: "invalid", err: agents.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/agents", strings.NewReader(body))
			req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{Email: "boss@studio.com", IsAdmin: true}))

			rec := httptest.NewRecorder()
			NewHandler(stubService{err: tt.err}, nopLogger{}).Handle(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp AgentResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "Guest", resp.PlanTier)
				assert.Equal(t, 8, resp.MonthlyBookingLimit)
			}
		})
	}
}
