package availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// DayBlockLookup answers whether a date is administratively blocked
type DayBlockLookup interface {
	BlockFor(date time.Time) (*domain.DayBlock, bool)
}

// Blocks is an in-memory DayBlockLookup keyed by YYYY-MM-DD
type Blocks map[string]*domain.DayBlock

func NewBlocks(blocks ...*domain.DayBlock) Blocks {
	out := make(Blocks, len(blocks))
	for _, b := range blocks {
		if b != nil {
			out[b.Date.Format(domain.DateFormat)] = b
		}
	}
	return out
}

func (b Blocks) BlockFor(date time.Time) (*domain.DayBlock, bool) {
	block, ok := b[date.Format(domain.DateFormat)]
	return block, ok
}

// Snapshot is the read-only view of a date handed to the engine by its caller
type Snapshot struct {
	Date     time.Time
	Bookings []*domain.Booking
	Roster   domain.Roster
	Blocks   DayBlockLookup
}

// Candidate is a booking request being evaluated
type Candidate struct {
	Date       time.Time
	Start      types.TimeString
	End        types.TimeString
	AgentEmail string
	PlanTier   domain.PlanTier
	ClientName string
	Price      float64
}

// SlotCost tells whether the candidate takes a new seat in a spanned slot.
// An agent already seated in a slot costs nothing there.
type SlotCost struct {
	Start      types.TimeString
	End        types.TimeString
	NewSeat    bool
	Restricted bool
}

// Decision is the outcome of CanBook
type Decision struct {
	Accepted  bool
	Rejection *Rejection
	Slots     []SlotCost
}

// SlotOccupancy is re-exported so callers of the engine need only this package
type SlotOccupancy = domain.SlotOccupancy

// interval is an existing booking reduced to what capacity accounting needs
type interval struct {
	agent      string
	start      int
	end        int
	restricted bool
}

func (e *Engine) intervals(date time.Time, s Snapshot) []interval {
	key := date.Format(domain.DateFormat)
	out := make([]interval, 0, len(s.Bookings))
	for _, b := range s.Bookings {
		if b == nil || b.DateKey() != key {
			continue
		}
		start, end := b.StartTime.Minutes(), b.EndTime.Minutes()
		if start < 0 || end <= start {
			continue
		}
		out = append(out, interval{
			agent:      domain.NormalizeEmail(b.AgentEmail),
			start:      start,
			end:        end,
			restricted: e.agentRestricted(s.Roster, b.AgentEmail),
		})
	}
	return out
}

// agentRestricted treats agents missing from the roster as unrestricted
func (e *Engine) agentRestricted(roster domain.Roster, email string) bool {
	a, ok := roster.Lookup(email)
	if !ok {
		return false
	}
	return e.policy.IsRestricted(a.PlanTier)
}

// occupants returns the distinct agents overlapping [start, end) and how many of them are restricted
func occupants(all []interval, start, end int) (map[string]bool, int) {
	agents := make(map[string]bool)
	restricted := 0
	for _, iv := range all {
		if !Overlaps(iv.start, iv.end, start, end) {
			continue
		}
		if _, seen := agents[iv.agent]; seen {
			continue
		}
		agents[iv.agent] = iv.restricted
		if iv.restricted {
			restricted++
		}
	}
	return agents, restricted
}
