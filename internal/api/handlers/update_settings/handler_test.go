package update_settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/settings"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	got *models.UpdateSettingsRequest
	err error
}

func (s *stubService) Update(_ context.Context, _ domain.Caller, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.got = req
	return &models.SettingsResponse{}, s.err
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "partial update", body: `{"seatsPerSlot":5,"openTime":"08:00","restrictedPlans":["Guest"]}`, wantStatus: http.StatusOK},
		{name: "bad time", body: `{"openTime":"8am"}`, wantStatus: http.StatusBadRequest},
		{name: "not admin", body: `{"seatsPerSlot":5}`, err: settings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "invalid settings", body: `{"slotMinutes":7}`, err: settings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(tt.body))
			req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{Email: "boss@studio.com", IsAdmin: true}))

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.name == "partial update" {
				require.NotNil(t, svc.got.SeatsPerSlot)
				assert.Equal(t, 5, *svc.got.SeatsPerSlot)
				assert.Nil(t, svc.got.SlotMinutes)
				assert.Equal(t, []domain.PlanTier{domain.PlanGuest}, svc.got.RestrictedPlans)
			}
		})
	}
}
