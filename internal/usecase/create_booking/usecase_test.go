package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/events"
	dayblockRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/dayblock"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// lockingTx serializes whole transactions, standing in for the date lock
type lockingTx struct{ mu sync.Mutex }

func (tx *lockingTx) Do(ctx context.Context, fn func(context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

type fakeBookings struct {
	mu       sync.Mutex
	items    []*domain.Booking
	locks    []string
	getErr   error
	createFn func(*domain.Booking) error
}

func (r *fakeBookings) LockDate(_ context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = append(r.locks, "date:"+date.Format(domain.DateFormat))
	return nil
}

func (r *fakeBookings) LockAgent(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = append(r.locks, "agent:"+email)
	return nil
}

func (r *fakeBookings) GetByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Booking
	for _, b := range r.items {
		if b.DateKey() == date.Format(domain.DateFormat) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookings) CountByAgentInRange(_ context.Context, email string, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.items {
		if b.IsOwnedBy(email) && !b.Date.Before(from) && !b.Date.After(to) {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createFn != nil {
		if err := r.createFn(b); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = int64(len(r.items) + 1)
	r.items = append(r.items, b)
	return b, nil
}

type fakeAgents []*domain.Agent

func (r fakeAgents) List(context.Context) ([]*domain.Agent, error) { return r, nil }

type fakeBlocks map[string]*domain.DayBlock

func (r fakeBlocks) GetByDate(_ context.Context, date time.Time) (*domain.DayBlock, error) {
	b, ok := r[date.Format(domain.DateFormat)]
	if !ok {
		return nil, dayblockRepo.ErrDayBlockNotFound
	}
	return b, nil
}

type staticPolicy struct{ p availability.Policy }

func (s staticPolicy) Policy(context.Context) (availability.Policy, error) { return s.p, nil }

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, e.Type)
	return nil
}

type decisions struct {
	mu   sync.Mutex
	seen []string
}

func (d *decisions) RecordDecision(result, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = append(d.seen, result+":"+reason)
}

var (
	day = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now = day.Add(-72 * time.Hour)
)

func roster() fakeAgents {
	return fakeAgents{
		{Email: "a@studio.com", PlanTier: domain.PlanStandard},
		{Email: "b@studio.com", PlanTier: domain.PlanStandard},
		{Email: "c@studio.com", PlanTier: domain.PlanStandard},
		{Email: "d@studio.com", PlanTier: domain.PlanStandard},
		{Email: "e@studio.com", PlanTier: domain.PlanStandard},
		{Email: "g1@studio.com", PlanTier: domain.PlanGuest, MonthlyBookingLimit: 2},
		{Email: "g2@studio.com", PlanTier: domain.PlanPercentage},
	}
}

func existing(email, start, end string) *domain.Booking {
	return &domain.Booking{
		Date:       day,
		StartTime:  types.MustTimeString(start),
		EndTime:    types.MustTimeString(end),
		AgentEmail: email,
		ClientName: "Client",
	}
}

func request(email, start, end string) *Request {
	return &Request{
		AgentEmail: email,
		Date:       day,
		StartTime:  types.MustTimeString(start),
		EndTime:    types.MustTimeString(end),
		ClientName: "Walk-in",
		Price:      150,
	}
}

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookings
	publisher *recordingPublisher
	decisions *decisions
}

func newFixture(blocks fakeBlocks, items ...*domain.Booking) *fixture {
	f := &fixture{
		bookings:  &fakeBookings{items: items},
		publisher: &recordingPublisher{},
		decisions: &decisions{},
	}
	f.uc = NewUseCase(f.bookings, roster(), blocks, staticPolicy{availability.DefaultPolicy()},
		&lockingTx{}, f.publisher, f.decisions, nopLogger{})
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func TestUseCase_Execute(t *testing.T) {
	tests := []struct {
		name       string
		blocks     fakeBlocks
		existing   []*domain.Booking
		req        *Request
		wantErr    error
		wantReason availability.ReasonCode
	}{
		{
			name: "empty day accepts",
			req:  request("a@studio.com", "10:00", "12:00"),
		},
		{
			name:       "blocked day",
			blocks:     fakeBlocks{"2025-06-10": {Date: day, Reason: "holiday"}},
			req:        request("a@studio.com", "10:00", "11:00"),
			wantErr:    ErrRejected,
			wantReason: availability.ReasonDayBlocked,
		},
		{
			name:       "own overlapping booking",
			existing:   []*domain.Booking{existing("a@studio.com", "10:30", "11:30")},
			req:        request("A@Studio.com", "10:00", "11:00"),
			wantErr:    ErrRejected,
			wantReason: availability.ReasonSelfConflict,
		},
		{
			name: "full slot",
			existing: []*domain.Booking{
				existing("b@studio.com", "10:00", "11:00"),
				existing("c@studio.com", "10:00", "11:00"),
				existing("d@studio.com", "10:00", "11:00"),
				existing("e@studio.com", "10:00", "11:00"),
			},
			req:        request("a@studio.com", "10:00", "11:00"),
			wantErr:    ErrRejected,
			wantReason: availability.ReasonCapacityExhausted,
		},
		{
			name:       "second restricted agent on the date",
			existing:   []*domain.Booking{existing("g2@studio.com", "18:00", "19:00")},
			req:        request("g1@studio.com", "10:00", "11:00"),
			wantErr:    ErrRejected,
			wantReason: availability.ReasonRestrictedPlanExclusivity,
		},
		{
			name:    "unknown agent",
			req:     request("stranger@studio.com", "10:00", "11:00"),
			wantErr: ErrAgentNotFound,
		},
		{
			name:    "outside the grid",
			req:     request("a@studio.com", "06:00", "08:00"),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end before start",
			req:     request("a@studio.com", "11:00", "10:00"),
			wantErr: ErrInvalidInput,
		},
		{
			name: "past date",
			req: func() *Request {
				r := request("a@studio.com", "10:00", "11:00")
				r.Date = now.AddDate(0, 0, -1)
				return r
			}(),
			wantErr: ErrInvalidDate,
		},
		{
			name: "monthly limit",
			existing: []*domain.Booking{
				existing("g1@studio.com", "08:00", "09:00"),
				{Date: day.AddDate(0, 0, 5), StartTime: "08:00", EndTime: "09:00", AgentEmail: "g1@studio.com", ClientName: "x"},
			},
			req:     request("g1@studio.com", "12:00", "13:00"),
			wantErr: ErrMonthlyLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.blocks, tt.existing...)

			resp, err := f.uc.Execute(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantReason != "" {
					var rejection *availability.Rejection
					require.True(t, errors.As(err, &rejection))
					assert.Equal(t, tt.wantReason, rejection.Code)
				}
				assert.Len(t, f.bookings.items, len(tt.existing))
				assert.Empty(t, f.publisher.keys)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, resp.ID)
			assert.Equal(t, "a@studio.com", resp.AgentEmail)
			assert.Len(t, resp.Slots, 2)
			assert.Equal(t, []string{"date:2025-06-10", "agent:a@studio.com"}, f.bookings.locks)
			assert.Equal(t, []string{events.BookingCreated}, f.publisher.keys)
			assert.Equal(t, []string{"accepted:none"}, f.decisions.seen)
		})
	}
}

func TestUseCase_Execute_RecordsRejectionReason(t *testing.T) {
	f := newFixture(fakeBlocks{"2025-06-10": {Date: day}})

	_, err := f.uc.Execute(context.Background(), request("a@studio.com", "10:00", "11:00"))
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, []string{"rejected:day_blocked"}, f.decisions.seen)
}

func TestUseCase_Execute_RecordsMonthlyLimit(t *testing.T) {
	f := newFixture(nil,
		existing("g1@studio.com", "08:00", "09:00"),
		&domain.Booking{Date: day.AddDate(0, 0, 3), StartTime: "08:00", EndTime: "09:00", AgentEmail: "g1@studio.com", ClientName: "x"},
	)

	_, err := f.uc.Execute(context.Background(), request("G1@studio.com", "12:00", "13:00"))
	require.ErrorIs(t, err, ErrMonthlyLimitReached)
	assert.Equal(t, []string{"rejected:monthly_limit"}, f.decisions.seen)
	assert.Equal(t, []string{"date:2025-06-10", "agent:g1@studio.com"}, f.bookings.locks)
}

func TestUseCase_Execute_StoreFailureIsNotAvailability(t *testing.T) {
	f := newFixture(nil)
	f.bookings.getErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request("a@studio.com", "10:00", "11:00"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.bookings.items)
}

func TestUseCase_Execute_ConcurrentRequestsRespectCapacity(t *testing.T) {
	f := newFixture(nil,
		existing("b@studio.com", "10:00", "11:00"),
		existing("c@studio.com", "10:00", "11:00"),
		existing("d@studio.com", "10:00", "11:00"),
	)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for _, email := range []string{"a@studio.com", "e@studio.com"} {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), request(email, "10:00", "11:00"))
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrRejected)
		}(email)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Len(t, f.bookings.items, 4)
}

func TestMonthRange(t *testing.T) {
	from, to := monthRange(time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-01", from.Format(domain.DateFormat))
	assert.Equal(t, "2024-02-29", to.Format(domain.DateFormat))
}
