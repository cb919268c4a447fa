package availability

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Overlaps reports whether [a1, a2) and [b1, b2) intersect. Values are minutes since midnight.
func Overlaps(a1, a2, b1, b2 int) bool {
	return a1 < b2 && a2 > b1
}

// Engine decides bookings and computes occupancy for one policy.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{policy: policy}, nil
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// CanBook decides whether the candidate may be booked against the snapshot.
// Checks run in order: day block, self conflict, restricted plan exclusivity,
// total capacity, restricted capacity.
func (e *Engine) CanBook(c Candidate, s Snapshot) (Decision, error) {
	if err := e.validate(c, s); err != nil {
		return Decision{}, err
	}

	if s.Blocks != nil {
		if block, ok := s.Blocks.BlockFor(c.Date); ok {
			return reject(ReasonDayBlocked, block.DisplayReason(), ""), nil
		}
	}

	start, end := c.Start.Minutes(), c.End.Minutes()
	agent := domain.NormalizeEmail(c.AgentEmail)
	existing := e.intervals(c.Date, s)

	for _, iv := range existing {
		if iv.agent == agent && Overlaps(iv.start, iv.end, start, end) {
			return reject(ReasonSelfConflict,
				"agent already has an overlapping booking on this date",
				timeAt(iv.start)), nil
		}
	}

	restricted := e.policy.IsRestricted(c.PlanTier)
	if restricted {
		for _, iv := range existing {
			if iv.agent != agent && iv.restricted {
				return reject(ReasonRestrictedPlanExclusivity,
					"another restricted-plan agent already works on this date", ""), nil
			}
		}
	}

	type slotState struct {
		slot       slot
		seated     bool
		total      int
		restricted int
	}

	spanned := e.policy.Grid.spanned(start, end)
	states := make([]slotState, 0, len(spanned))
	for _, sl := range spanned {
		agents, restrictedCount := occupants(existing, sl.start, sl.end)
		st := slotState{slot: sl, total: len(agents), restricted: restrictedCount}
		if wasRestricted, ok := agents[agent]; ok {
			st.seated = true
			st.total--
			if wasRestricted {
				st.restricted--
			}
		}
		states = append(states, st)
	}

	for _, st := range states {
		if !st.seated && st.total >= e.policy.Capacity.SeatsPerSlot {
			return reject(ReasonCapacityExhausted,
				fmt.Sprintf("all %d seats are taken", e.policy.Capacity.SeatsPerSlot),
				st.slot.startTime()), nil
		}
	}

	if restricted {
		for _, st := range states {
			if !st.seated && st.restricted >= e.policy.Capacity.SeatsRestrictedPlans {
				return reject(ReasonRestrictedCapacityExhausted,
					fmt.Sprintf("all %d restricted-plan seats are taken", e.policy.Capacity.SeatsRestrictedPlans),
					st.slot.startTime()), nil
			}
		}
	}

	costs := make([]SlotCost, 0, len(states))
	for _, st := range states {
		costs = append(costs, SlotCost{
			Start:      st.slot.startTime(),
			End:        st.slot.endTime(),
			NewSeat:    !st.seated,
			Restricted: restricted,
		})
	}
	return Decision{Accepted: true, Slots: costs}, nil
}

// ComputeOccupancy returns distinct-agent counts for every slot of the grid on date
func (e *Engine) ComputeOccupancy(date time.Time, s Snapshot) []SlotOccupancy {
	existing := e.intervals(date, s)
	grid := e.policy.Grid.slots()
	out := make([]SlotOccupancy, 0, len(grid))
	for _, sl := range grid {
		agents, restricted := occupants(existing, sl.start, sl.end)
		out = append(out, SlotOccupancy{
			Start:      sl.startTime(),
			End:        sl.endTime(),
			Total:      len(agents),
			Restricted: restricted,
		})
	}
	return out
}

func (e *Engine) validate(c Candidate, s Snapshot) error {
	if c.Date.IsZero() {
		return invalid("date is required")
	}
	if !s.Date.IsZero() && s.Date.Format(domain.DateFormat) != c.Date.Format(domain.DateFormat) {
		return invalid("snapshot is for %s, candidate for %s",
			s.Date.Format(domain.DateFormat), c.Date.Format(domain.DateFormat))
	}
	if strings.TrimSpace(c.AgentEmail) == "" {
		return invalid("agent email is required")
	}
	if err := c.Start.Validate(); err != nil {
		return invalid("start: %v", err)
	}
	if err := c.End.Validate(); err != nil {
		return invalid("end: %v", err)
	}
	if !c.Start.IsBefore(c.End) {
		return invalid("end %s must be after start %s", c.End, c.Start)
	}
	if c.Start.IsBefore(e.policy.Grid.Open) || c.End.IsAfter(e.policy.Grid.Close) {
		return invalid("interval %s-%s is outside working hours %s-%s",
			c.Start, c.End, e.policy.Grid.Open, e.policy.Grid.Close)
	}
	if strings.TrimSpace(c.ClientName) == "" {
		return invalid("client name is required")
	}
	if c.Price < 0 || math.IsNaN(c.Price) || math.IsInf(c.Price, 0) {
		return invalid("price must be a non-negative number")
	}
	return nil
}

func reject(code ReasonCode, msg string, at types.TimeString) Decision {
	return Decision{Rejection: &Rejection{Code: code, Message: msg, Slot: at}}
}

func timeAt(minutes int) types.TimeString {
	t, _ := types.TimeStringFromMinutes(minutes)
	return t
}
