package get_agent_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	got *models.ListAgentBookingsRequest
	err error
}

func (s *stubService) ListAgentBookings(_ context.Context, req *models.ListAgentBookingsRequest, _ domain.Caller) (*models.BookingListResponse, error) {
	s.got = req
	return &models.BookingListResponse{}, s.err
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantOpen   bool
	}{
		{name: "all", wantStatus: http.StatusOK},
		{name: "open only with range", query: "?open=true&from=2025-06-01&to=2025-06-30", wantStatus: http.StatusOK, wantOpen: true},
		{name: "bad open flag", query: "?open=maybe", wantStatus: http.StatusBadRequest},
		{name: "bad date", query: "?from=June", wantStatus: http.StatusBadRequest},
		{name: "other agent", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/agents/ink@studio.com/bookings"+tt.query, nil)
			req = mux.SetURLVars(req, map[string]string{"email": "ink@studio.com"})
			req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{Email: "ink@studio.com"}))

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ink@studio.com", svc.got.AgentEmail)
				assert.Equal(t, tt.wantOpen, svc.got.OpenOnly)
			}
		})
	}
}
