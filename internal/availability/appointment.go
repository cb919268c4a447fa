package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Appointment is one or more bookings of an agent on a date treated as a unit
type Appointment struct {
	Parts []*domain.Booking
}

// Single wraps one booking
func Single(b *domain.Booking) Appointment {
	return Appointment{Parts: []*domain.Booking{b}}
}

// Start returns the earliest part start
func (a Appointment) Start() (time.Time, types.TimeString, bool) {
	var (
		first *domain.Booking
		best  = -1
	)
	for _, p := range a.Parts {
		if p == nil {
			continue
		}
		if m := p.StartTime.Minutes(); m >= 0 && (first == nil || m < best) {
			first, best = p, m
		}
	}
	if first == nil {
		return time.Time{}, "", false
	}
	return first.Date, first.StartTime, true
}

// End returns the latest part end
func (a Appointment) End() (time.Time, types.TimeString, bool) {
	var (
		last *domain.Booking
		best = -1
	)
	for _, p := range a.Parts {
		if p == nil {
			continue
		}
		if m := p.EndTime.Minutes(); m >= 0 && m > best {
			last, best = p, m
		}
	}
	if last == nil {
		return time.Time{}, "", false
	}
	return last.Date, last.EndTime, true
}

// AgentEmail returns the owner of the first part
func (a Appointment) AgentEmail() string {
	for _, p := range a.Parts {
		if p != nil {
			return p.AgentEmail
		}
	}
	return ""
}

// CanDelete reports whether the agent may still delete the appointment.
// Agents without a monthly limit may always delete; others need at least
// DeletionNoticeHours before the earliest part starts.
func CanDelete(a Appointment, agent *domain.Agent, now time.Time) bool {
	if agent != nil && !agent.HasMonthlyLimit() {
		return true
	}
	date, start, ok := a.Start()
	if !ok {
		return false
	}
	remaining := start.On(date, now.Location()).Sub(now)
	return remaining.Hours() >= domain.DeletionNoticeHours
}

// HasElapsed reports whether the latest part ended strictly before now.
// Date and time are read as wall clock in now's location.
func HasElapsed(a Appointment, now time.Time) bool {
	date, end, ok := a.End()
	if !ok {
		return false
	}
	return end.On(date, now.Location()).Before(now)
}

// GroupByAgent groups bookings per agent and date, ordered by earliest start
func GroupByAgent(bookings []*domain.Booking) []Appointment {
	type key struct {
		date  string
		agent string
	}
	groups := make(map[key]*Appointment)
	var order []key
	for _, b := range bookings {
		if b == nil {
			continue
		}
		k := key{date: b.DateKey(), agent: domain.NormalizeEmail(b.AgentEmail)}
		g, ok := groups[k]
		if !ok {
			g = &Appointment{}
			groups[k] = g
			order = append(order, k)
		}
		g.Parts = append(g.Parts, b)
	}

	out := make([]Appointment, 0, len(order))
	for _, k := range order {
		g := groups[k]
		sort.SliceStable(g.Parts, func(i, j int) bool {
			return g.Parts[i].StartTime.Minutes() < g.Parts[j].StartTime.Minutes()
		})
		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, si, _ := out[i].Start()
		dj, sj, _ := out[j].Start()
		if ki, kj := di.Format(domain.DateFormat), dj.Format(domain.DateFormat); ki != kj {
			return ki < kj
		}
		if si != sj {
			return si.Minutes() < sj.Minutes()
		}
		return domain.NormalizeEmail(out[i].AgentEmail()) < domain.NormalizeEmail(out[j].AgentEmail())
	})
	return out
}
