package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	stored *domain.StudioSettings
	getErr error
}

func (r *fakeRepo) Get(context.Context) (*domain.StudioSettings, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.stored == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	cp := *r.stored
	return &cp, nil
}

func (r *fakeRepo) Upsert(_ context.Context, s *domain.StudioSettings) error {
	cp := *s
	r.stored = &cp
	return nil
}

var admin = domain.Caller{Email: "boss@studio.com", IsAdmin: true}

func TestService_GetFallsBackToDefaults(t *testing.T) {
	defaults := domain.DefaultStudioSettings()
	defaults.SeatsPerSlot = 5
	svc := NewService(&fakeRepo{}, defaults, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, 5, resp.SeatsPerSlot)
	assert.Len(t, resp.Slots, 16)

	policy, err := svc.Policy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, policy.Capacity.SeatsPerSlot)
	assert.True(t, policy.IsRestricted(domain.PlanGuest))
}

func TestService_GetStorageError(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: errors.New("down")}, nil, nopLogger{})

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Update(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nopLogger{})

	resp, err := svc.Update(context.Background(), admin, &models.UpdateSettingsRequest{
		SlotMinutes:     ptr.Ptr(30),
		RestrictedPlans: []domain.PlanTier{domain.PlanGuest},
	})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Len(t, resp.Slots, 32)
	assert.Equal(t, "boss@studio.com", repo.stored.UpdatedBy)
	assert.Equal(t, 4, repo.stored.SeatsPerSlot)
	assert.Equal(t, []domain.PlanTier{domain.PlanGuest}, repo.stored.RestrictedPlans)
}

func TestService_UpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{name: "zero seats", req: models.UpdateSettingsRequest{SeatsPerSlot: ptr.Ptr(0)}},
		{name: "too many seats", req: models.UpdateSettingsRequest{SeatsPerSlot: ptr.Ptr(101)}},
		{name: "restricted above total", req: models.UpdateSettingsRequest{SeatsRestrictedPlans: ptr.Ptr(5)}},
		{name: "zero restricted", req: models.UpdateSettingsRequest{SeatsRestrictedPlans: ptr.Ptr(0)}},
		{name: "slot does not divide day", req: models.UpdateSettingsRequest{SlotMinutes: ptr.Ptr(45)}},
		{name: "close before open", req: models.UpdateSettingsRequest{CloseTime: ptr.Ptr(types.TimeString("06:00"))}},
		{name: "empty plan", req: models.UpdateSettingsRequest{RestrictedPlans: []domain.PlanTier{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo, nil, nopLogger{})

			_, err := svc.Update(context.Background(), admin, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.stored)
		})
	}
}

func TestService_UpdateRequiresAdmin(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, nopLogger{})

	_, err := svc.Update(context.Background(), domain.Caller{Email: "x@studio.com"}, &models.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
