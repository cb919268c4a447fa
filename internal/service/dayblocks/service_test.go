package dayblocks

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	dayblockRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/dayblock"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	blocks map[string]*domain.DayBlock
}

func (r *fakeRepo) Create(_ context.Context, b *domain.DayBlock) (*domain.DayBlock, error) {
	key := b.Date.Format(domain.DateFormat)
	if _, ok := r.blocks[key]; ok {
		return nil, dayblockRepo.ErrDuplicateBlock
	}
	r.blocks[key] = b
	return b, nil
}

func (r *fakeRepo) GetByDate(_ context.Context, date time.Time) (*domain.DayBlock, error) {
	b, ok := r.blocks[date.Format(domain.DateFormat)]
	if !ok {
		return nil, dayblockRepo.ErrDayBlockNotFound
	}
	return b, nil
}

func (r *fakeRepo) List(context.Context, *time.Time, *time.Time) ([]*domain.DayBlock, error) {
	out := make([]*domain.DayBlock, 0, len(r.blocks))
	for _, b := range r.blocks {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, date time.Time) error {
	key := date.Format(domain.DateFormat)
	if _, ok := r.blocks[key]; !ok {
		return dayblockRepo.ErrDayBlockNotFound
	}
	delete(r.blocks, key)
	return nil
}

var (
	admin = domain.Caller{Email: "Boss@studio.com", IsAdmin: true}
	day   = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func TestService_Lifecycle(t *testing.T) {
	svc := NewService(&fakeRepo{blocks: map[string]*domain.DayBlock{}}, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, day, " Maintenance ")
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", created.Reason)
	assert.Equal(t, "boss@studio.com", created.CreatedBy)

	_, err = svc.Create(ctx, admin, day, "")
	assert.ErrorIs(t, err, ErrAlreadyBlocked)

	got, err := svc.GetByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", got.DisplayReason())

	list, err := svc.List(ctx, admin, nil, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, admin, day))
	_, err = svc.GetByDate(ctx, day)
	assert.ErrorIs(t, err, ErrDayBlockNotFound)
}

func TestService_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{blocks: map[string]*domain.DayBlock{}}, nopLogger{})
	ctx := context.Background()
	caller := domain.Caller{Email: "x@studio.com"}

	_, err := svc.Create(ctx, caller, day, "")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Create(ctx, admin, time.Time{}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, admin, day, strings.Repeat("x", domain.MaxReasonLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	from, to := day, day.AddDate(0, 0, -1)
	_, err = svc.List(ctx, admin, &from, &to)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.Delete(ctx, caller, day), ErrAccessDenied)
}
