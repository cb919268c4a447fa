package domain

import (
	"strings"
	"time"
)

// PlanTier is the commercial plan an agent works under
type PlanTier string

const (
	PlanStandard   PlanTier = "Standard"
	PlanGuest      PlanTier = "Guest"
	PlanPercentage PlanTier = "Percentage"
)

// Agent is a tattoo artist on the studio roster
type Agent struct {
	ID                  int64
	Email               string
	Name                string
	PlanTier            PlanTier
	MonthlyBookingLimit int // 0 = unlimited
	CreatedAt           time.Time
}

// HasMonthlyLimit returns true if the agent's plan caps bookings per month
func (a *Agent) HasMonthlyLimit() bool {
	return a.MonthlyBookingLimit > 0
}

// Roster maps normalized email to agent
type Roster map[string]*Agent

// NewRoster indexes agents by normalized email
func NewRoster(agents []*Agent) Roster {
	r := make(Roster, len(agents))
	for _, a := range agents {
		r[NormalizeEmail(a.Email)] = a
	}
	return r
}

// Lookup finds an agent by email, case-insensitively
func (r Roster) Lookup(email string) (*Agent, bool) {
	a, ok := r[NormalizeEmail(email)]
	return a, ok
}

// NormalizeEmail lowercases and trims an email used as a natural key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
