package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultPolicy())
	require.NoError(t, err)
	return e
}

func booking(agent, start, end string) *domain.Booking {
	return &domain.Booking{
		Date:       day,
		StartTime:  types.MustTimeString(start),
		EndTime:    types.MustTimeString(end),
		AgentEmail: agent,
		ClientName: "client",
	}
}

func candidate(agent string, plan domain.PlanTier, start, end string) Candidate {
	return Candidate{
		Date:       day,
		Start:      types.MustTimeString(start),
		End:        types.MustTimeString(end),
		AgentEmail: agent,
		PlanTier:   plan,
		ClientName: "Ana",
		Price:      300,
	}
}

func roster(agents map[string]domain.PlanTier) domain.Roster {
	list := make([]*domain.Agent, 0, len(agents))
	for email, plan := range agents {
		list = append(list, &domain.Agent{Email: email, PlanTier: plan})
	}
	return domain.NewRoster(list)
}

func snapshot(r domain.Roster, bookings ...*domain.Booking) Snapshot {
	return Snapshot{Date: day, Bookings: bookings, Roster: r, Blocks: NewBlocks()}
}

func TestCanBook_Scenarios(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name      string
		candidate Candidate
		snapshot  Snapshot
		wantCode  ReasonCode
		wantSlot  types.TimeString
		wantMsg   string
	}{
		{
			name:      "empty day accepts",
			candidate: candidate("x@studio.com", domain.PlanStandard, "10:00", "11:00"),
			snapshot:  snapshot(roster(map[string]domain.PlanTier{"x@studio.com": domain.PlanStandard})),
		},
		{
			name:      "fifth agent hits capacity",
			candidate: candidate("e@studio.com", domain.PlanStandard, "10:00", "11:00"),
			snapshot: snapshot(nil,
				booking("a@studio.com", "10:00", "10:30"),
				booking("b@studio.com", "10:00", "10:30"),
				booking("c@studio.com", "10:00", "10:30"),
				booking("d@studio.com", "10:00", "10:30"),
			),
			wantCode: ReasonCapacityExhausted,
			wantSlot: "10:00",
		},
		{
			name:      "restricted exclusivity without overlap",
			candidate: candidate("z@studio.com", domain.PlanPercentage, "14:00", "15:00"),
			snapshot: snapshot(
				roster(map[string]domain.PlanTier{"y@studio.com": domain.PlanGuest, "z@studio.com": domain.PlanPercentage}),
				booking("y@studio.com", "09:00", "10:00"),
			),
			wantCode: ReasonRestrictedPlanExclusivity,
		},
		{
			name:      "day block rejects with stored reason",
			candidate: candidate("x@studio.com", domain.PlanStandard, "10:00", "11:00"),
			snapshot: Snapshot{
				Date:   day,
				Blocks: NewBlocks(&domain.DayBlock{Date: day, Reason: "Maintenance"}),
			},
			wantCode: ReasonDayBlocked,
			wantMsg:  "Maintenance",
		},
		{
			name:      "day block without reason uses default",
			candidate: candidate("x@studio.com", domain.PlanStandard, "10:00", "11:00"),
			snapshot: Snapshot{
				Date:   day,
				Blocks: NewBlocks(&domain.DayBlock{Date: day}),
			},
			wantCode: ReasonDayBlocked,
			wantMsg:  domain.DefaultDayBlockReason,
		},
		{
			name:      "self conflict ignores capacity",
			candidate: candidate("X@Studio.com", domain.PlanStandard, "10:30", "11:30"),
			snapshot:  snapshot(nil, booking("x@studio.com", "10:00", "11:00")),
			wantCode:  ReasonSelfConflict,
			wantSlot:  "10:00",
		},
		{
			name:      "adjacent own booking is not a conflict",
			candidate: candidate("x@studio.com", domain.PlanStandard, "11:00", "12:00"),
			snapshot:  snapshot(nil, booking("x@studio.com", "10:00", "11:00")),
		},
		{
			name:      "booking ending at slot start does not occupy it",
			candidate: candidate("e@studio.com", domain.PlanStandard, "11:00", "12:00"),
			snapshot: snapshot(nil,
				booking("a@studio.com", "10:00", "11:00"),
				booking("b@studio.com", "10:00", "11:00"),
				booking("c@studio.com", "10:00", "11:00"),
				booking("d@studio.com", "10:00", "11:00"),
			),
		},
		{
			name:      "same agent twice counts once",
			candidate: candidate("e@studio.com", domain.PlanStandard, "10:00", "11:00"),
			snapshot: snapshot(nil,
				booking("a@studio.com", "10:00", "10:30"),
				booking("a@studio.com", "10:30", "11:00"),
				booking("b@studio.com", "10:00", "11:00"),
				booking("c@studio.com", "10:00", "11:00"),
			),
		},
		{
			name:      "agents missing from the roster are not restricted",
			candidate: candidate("z@studio.com", domain.PlanGuest, "10:00", "11:00"),
			snapshot: snapshot(
				roster(map[string]domain.PlanTier{"z@studio.com": domain.PlanGuest}),
				booking("z@studio.com", "08:00", "09:00"),
				booking("a@studio.com", "10:00", "11:00"),
			),
		},
		{
			name:      "capacity checked in every spanned slot",
			candidate: candidate("e@studio.com", domain.PlanStandard, "10:00", "13:00"),
			snapshot: snapshot(nil,
				booking("a@studio.com", "12:00", "13:00"),
				booking("b@studio.com", "12:00", "13:00"),
				booking("c@studio.com", "12:00", "13:00"),
				booking("d@studio.com", "12:30", "13:00"),
			),
			wantCode: ReasonCapacityExhausted,
			wantSlot: "12:00",
		},
		{
			name:      "bookings on other dates are ignored",
			candidate: candidate("z@studio.com", domain.PlanGuest, "10:00", "11:00"),
			snapshot: snapshot(
				roster(map[string]domain.PlanTier{"y@studio.com": domain.PlanGuest}),
				&domain.Booking{
					Date:       day.AddDate(0, 0, 1),
					StartTime:  "10:00",
					EndTime:    "11:00",
					AgentEmail: "y@studio.com",
				},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := e.CanBook(tt.candidate, tt.snapshot)
			require.NoError(t, err)

			if tt.wantCode == "" {
				assert.True(t, d.Accepted)
				assert.Nil(t, d.Rejection)
				return
			}

			assert.False(t, d.Accepted)
			require.NotNil(t, d.Rejection)
			assert.Equal(t, tt.wantCode, d.Rejection.Code)
			assert.Equal(t, tt.wantSlot, d.Rejection.Slot)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, d.Rejection.Message)
			}
		})
	}
}

func TestCanBook_RestrictedCapacity(t *testing.T) {
	p := DefaultPolicy()
	p.Capacity.SeatsRestrictedPlans = 1
	e, err := NewEngine(p)
	require.NoError(t, err)

	r := roster(map[string]domain.PlanTier{
		"guest@studio.com": domain.PlanGuest,
		"pct@studio.com":   domain.PlanPercentage,
	})
	s := snapshot(r, booking("guest@studio.com", "10:00", "11:00"))

	d, err := e.CanBook(candidate("pct@studio.com", domain.PlanPercentage, "10:00", "11:00"), s)
	require.NoError(t, err)
	require.NotNil(t, d.Rejection)
	// exclusivity runs before numeric capacity
	assert.Equal(t, ReasonRestrictedPlanExclusivity, d.Rejection.Code)

	d, err = e.CanBook(candidate("std@studio.com", domain.PlanStandard, "10:00", "11:00"), s)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
}

func TestCanBook_RestrictedSeatsZero(t *testing.T) {
	p := DefaultPolicy()
	p.Capacity.SeatsRestrictedPlans = 0
	e, err := NewEngine(p)
	require.NoError(t, err)

	d, err := e.CanBook(candidate("g@studio.com", domain.PlanGuest, "10:00", "11:00"), snapshot(nil))
	require.NoError(t, err)
	require.NotNil(t, d.Rejection)
	assert.Equal(t, ReasonRestrictedCapacityExhausted, d.Rejection.Code)
	assert.Equal(t, types.TimeString("10:00"), d.Rejection.Slot)
}

func TestCanBook_SlotCosts(t *testing.T) {
	p := DefaultPolicy()
	p.Grid.SlotMinutes = 30
	e, err := NewEngine(p)
	require.NoError(t, err)

	s := snapshot(nil, booking("x@studio.com", "10:00", "10:15"))
	d, err := e.CanBook(candidate("x@studio.com", domain.PlanStandard, "10:15", "11:00"), s)
	require.NoError(t, err)
	require.True(t, d.Accepted)

	require.Len(t, d.Slots, 2)
	assert.Equal(t, SlotCost{Start: "10:00", End: "10:30", NewSeat: false}, d.Slots[0])
	assert.Equal(t, SlotCost{Start: "10:30", End: "11:00", NewSeat: true}, d.Slots[1])
}

func TestCanBook_SeatedAgentDoesNotNeedNewSeat(t *testing.T) {
	e := newEngine(t)

	s := snapshot(nil,
		booking("x@studio.com", "10:00", "10:30"),
		booking("b@studio.com", "10:00", "11:00"),
		booking("c@studio.com", "10:00", "11:00"),
		booking("d@studio.com", "10:00", "11:00"),
	)
	d, err := e.CanBook(candidate("x@studio.com", domain.PlanStandard, "10:30", "11:00"), s)
	require.NoError(t, err)
	assert.True(t, d.Accepted)

	occ := e.ComputeOccupancy(day, s)
	assert.Equal(t, 4, occ[3].Total)
}

func TestCanBook_InvalidInput(t *testing.T) {
	e := newEngine(t)
	valid := candidate("x@studio.com", domain.PlanStandard, "10:00", "11:00")

	tests := []struct {
		name   string
		mutate func(c *Candidate)
		snap   Snapshot
	}{
		{name: "end equals start", mutate: func(c *Candidate) { c.End = c.Start }},
		{name: "end before start", mutate: func(c *Candidate) { c.Start, c.End = "12:00", "11:00" }},
		{name: "malformed start", mutate: func(c *Candidate) { c.Start = "9am" }},
		{name: "before opening", mutate: func(c *Candidate) { c.Start = "06:00" }},
		{name: "after closing", mutate: func(c *Candidate) { c.Start, c.End = "22:00", "23:30" }},
		{name: "empty client", mutate: func(c *Candidate) { c.ClientName = "  " }},
		{name: "negative price", mutate: func(c *Candidate) { c.Price = -1 }},
		{name: "missing agent", mutate: func(c *Candidate) { c.AgentEmail = "" }},
		{name: "missing date", mutate: func(c *Candidate) { c.Date = time.Time{} }},
		{
			name:   "snapshot for another date",
			mutate: func(c *Candidate) {},
			snap:   Snapshot{Date: day.AddDate(0, 0, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			// invalid input wins over a day block
			snap := tt.snap
			if snap.Date.IsZero() {
				snap = Snapshot{Date: day, Blocks: NewBlocks(&domain.DayBlock{Date: day})}
			}
			_, err := e.CanBook(c, snap)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCanBook_NeverExceedsCapacity(t *testing.T) {
	e := newEngine(t)
	agents := []string{"a", "b", "c", "d", "e", "f", "g"}
	intervals := [][2]string{{"10:00", "12:00"}, {"11:00", "11:30"}, {"09:00", "10:30"}, {"11:30", "13:00"}}

	var accepted []*domain.Booking
	for _, a := range agents {
		for _, iv := range intervals {
			c := candidate(a+"@studio.com", domain.PlanStandard, iv[0], iv[1])
			d, err := e.CanBook(c, snapshot(nil, accepted...))
			require.NoError(t, err)
			if d.Accepted {
				accepted = append(accepted, booking(c.AgentEmail, iv[0], iv[1]))
			}
		}
	}

	for _, occ := range e.ComputeOccupancy(day, snapshot(nil, accepted...)) {
		assert.LessOrEqual(t, occ.Total, e.Policy().Capacity.SeatsPerSlot, "slot %s", occ.Start)
	}
}

func TestComputeOccupancy(t *testing.T) {
	e := newEngine(t)
	r := roster(map[string]domain.PlanTier{"g@studio.com": domain.PlanGuest})
	s := snapshot(r,
		booking("g@studio.com", "10:00", "11:30"),
		booking("a@studio.com", "10:30", "11:00"),
		booking("a@studio.com", "10:00", "10:30"),
	)

	occ := e.ComputeOccupancy(day, s)
	require.Len(t, occ, 16)
	assert.Equal(t, SlotOccupancy{Start: "07:00", End: "08:00"}, occ[0])
	assert.Equal(t, SlotOccupancy{Start: "10:00", End: "11:00", Total: 2, Restricted: 1}, occ[3])
	assert.Equal(t, SlotOccupancy{Start: "11:00", End: "12:00", Total: 1, Restricted: 1}, occ[4])
	assert.Equal(t, SlotOccupancy{Start: "22:00", End: "23:00"}, occ[15])

	// pure function
	assert.Equal(t, occ, e.ComputeOccupancy(day, s))
}

func TestComputeOccupancy_RoundTrip(t *testing.T) {
	e := newEngine(t)
	r := roster(map[string]domain.PlanTier{"g@studio.com": domain.PlanGuest})
	s := snapshot(r, booking("a@studio.com", "09:00", "10:00"))
	before := e.ComputeOccupancy(day, s)

	c := candidate("g@studio.com", domain.PlanGuest, "09:30", "11:00")
	d, err := e.CanBook(c, s)
	require.NoError(t, err)
	require.True(t, d.Accepted)

	s.Bookings = append(s.Bookings, booking(c.AgentEmail, "09:30", "11:00"))
	after := e.ComputeOccupancy(day, s)

	spanned := map[types.TimeString]bool{}
	for _, sc := range d.Slots {
		spanned[sc.Start] = true
	}
	for i := range after {
		if spanned[after[i].Start] {
			assert.Equal(t, before[i].Total+1, after[i].Total, "slot %s", after[i].Start)
			assert.Equal(t, before[i].Restricted+1, after[i].Restricted, "slot %s", after[i].Start)
		} else {
			assert.Equal(t, before[i], after[i])
		}
	}
}

func TestNewEngine_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{name: "zero seats", mutate: func(p *Policy) { p.Capacity.SeatsPerSlot = 0 }},
		{name: "restricted above total", mutate: func(p *Policy) { p.Capacity.SeatsRestrictedPlans = 5 }},
		{name: "close before open", mutate: func(p *Policy) { p.Grid.Open, p.Grid.Close = "20:00", "08:00" }},
		{name: "slot does not divide day", mutate: func(p *Policy) { p.Grid.SlotMinutes = 45 }},
		{name: "zero slot", mutate: func(p *Policy) { p.Grid.SlotMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			_, err := NewEngine(p)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(600, 660, 630, 690))
	assert.True(t, Overlaps(600, 660, 600, 660))
	assert.True(t, Overlaps(600, 700, 620, 640))
	assert.False(t, Overlaps(600, 660, 660, 720))
	assert.False(t, Overlaps(660, 720, 600, 660))
}
