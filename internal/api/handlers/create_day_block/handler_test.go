package create_day_block

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/dayblocks"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct{ err error }

func (s stubService) Create(_ context.Context, _ domain.Caller, date time.Time, reason string) (*domain.DayBlock, error) {
	return &domain.DayBlock{ID: 1, Date: date, Reason: reason}, s.err
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "created", body: `{"date":"2025-12-25","reason":"Christmas"}`, wantStatus: http.StatusCreated},
		{name: "bad date", body: `{"date":"25.12.2025"}`, wantStatus: http.StatusBadRequest},
		{name: "not admin", body: `{"date":"2025-12-25"}`, err: dayblocks.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "duplicate", body: `{"date":"2025-12-25"}`, err: dayblocks.ErrAlreadyBlocked, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/day-blocks", strings.NewReader(tt.body))
			req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{Email: "boss@studio.com", IsAdmin: true}))

			rec := httptest.NewRecorder()
			NewHandler(stubService{err: tt.err}, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
