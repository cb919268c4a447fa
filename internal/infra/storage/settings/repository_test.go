package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/storagetest"
)

func TestRepository_Upsert(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrSettingsNotFound)

	s := domain.DefaultStudioSettings()
	s.UpdatedBy = "admin@studio.com"
	require.NoError(t, repo.Upsert(ctx, s))

	s.SeatsPerSlot = 6
	s.RestrictedPlans = []domain.PlanTier{domain.PlanGuest}
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, got.SeatsPerSlot)
	assert.Equal(t, []domain.PlanTier{domain.PlanGuest}, got.RestrictedPlans)
	assert.Equal(t, "07:00", got.OpenTime.String())
}
