package availability

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Grid is the fixed-size slot grid of a working day
type Grid struct {
	Open        types.TimeString
	Close       types.TimeString
	SlotMinutes int
}

// Capacity holds the two seat limits. SeatsRestrictedPlans is a subset of SeatsPerSlot.
type Capacity struct {
	SeatsPerSlot         int
	SeatsRestrictedPlans int
}

// Policy is everything the engine needs besides the snapshot
type Policy struct {
	Grid            Grid
	Capacity        Capacity
	RestrictedPlans []domain.PlanTier
}

// PolicyFromSettings converts persisted studio settings
func PolicyFromSettings(s *domain.StudioSettings) Policy {
	plans := make([]domain.PlanTier, len(s.RestrictedPlans))
	copy(plans, s.RestrictedPlans)
	return Policy{
		Grid: Grid{
			Open:        s.OpenTime,
			Close:       s.CloseTime,
			SlotMinutes: s.SlotMinutes,
		},
		Capacity: Capacity{
			SeatsPerSlot:         s.SeatsPerSlot,
			SeatsRestrictedPlans: s.SeatsRestrictedPlans,
		},
		RestrictedPlans: plans,
	}
}

// DefaultPolicy is the reference studio policy
func DefaultPolicy() Policy {
	return PolicyFromSettings(domain.DefaultStudioSettings())
}

func (p Policy) Validate() error {
	if err := p.Grid.Validate(); err != nil {
		return err
	}
	if p.Capacity.SeatsPerSlot < 1 {
		return invalid("seats per slot must be positive, got %d", p.Capacity.SeatsPerSlot)
	}
	if p.Capacity.SeatsRestrictedPlans < 0 || p.Capacity.SeatsRestrictedPlans > p.Capacity.SeatsPerSlot {
		return invalid("restricted seats must be within 0..%d, got %d",
			p.Capacity.SeatsPerSlot, p.Capacity.SeatsRestrictedPlans)
	}
	return nil
}

// IsRestricted reports whether tier is subject to the restricted plan rules
func (p Policy) IsRestricted(tier domain.PlanTier) bool {
	for _, r := range p.RestrictedPlans {
		if r == tier {
			return true
		}
	}
	return false
}

func (g Grid) Validate() error {
	if err := g.Open.Validate(); err != nil {
		return invalid("grid open: %v", err)
	}
	if err := g.Close.Validate(); err != nil {
		return invalid("grid close: %v", err)
	}
	if !g.Open.IsBefore(g.Close) {
		return invalid("grid open %s must be before close %s", g.Open, g.Close)
	}
	if g.SlotMinutes <= 0 {
		return invalid("slot minutes must be positive, got %d", g.SlotMinutes)
	}
	if span := g.Close.Minutes() - g.Open.Minutes(); span%g.SlotMinutes != 0 {
		return invalid("slot minutes %d do not divide the %d minute day", g.SlotMinutes, span)
	}
	return nil
}

// slot is a grid slot in minutes since midnight
type slot struct {
	start int
	end   int
}

func (s slot) startTime() types.TimeString {
	return timeAt(s.start)
}

func (s slot) endTime() types.TimeString {
	return timeAt(s.end)
}

// slots returns every slot of the grid in order. The grid must be valid.
func (g Grid) slots() []slot {
	open, closing := g.Open.Minutes(), g.Close.Minutes()
	out := make([]slot, 0, (closing-open)/g.SlotMinutes)
	for m := open; m < closing; m += g.SlotMinutes {
		out = append(out, slot{start: m, end: m + g.SlotMinutes})
	}
	return out
}

// spanned returns the grid slots overlapping [start, end)
func (g Grid) spanned(start, end int) []slot {
	var out []slot
	for _, s := range g.slots() {
		if Overlaps(start, end, s.start, s.end) {
			out = append(out, s)
		}
	}
	return out
}

// Slots returns the start time of every grid slot
func (g Grid) Slots() []types.TimeString {
	all := g.slots()
	out := make([]types.TimeString, 0, len(all))
	for _, s := range all {
		out = append(out, s.startTime())
	}
	return out
}
