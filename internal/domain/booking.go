package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Outcome is what happened to a booking once its interval elapsed
type Outcome string

const (
	OutcomeFinalized Outcome = "finalized"
	OutcomeNoShow    Outcome = "no_show"
)

// Booking is one interval an agent holds on the studio floor
type Booking struct {
	ID         int64
	Date       time.Time // calendar date only, time part is ignored
	StartTime  types.TimeString
	EndTime    types.TimeString
	AgentEmail string
	ClientName string
	Price      float64

	Finalized    bool
	ClientNoShow bool
	FinalizedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateKey returns the booking date as YYYY-MM-DD
func (b *Booking) DateKey() string {
	return b.Date.Format(DateFormat)
}

// HasOutcome returns true if the booking was finalized or marked as no-show
func (b *Booking) HasOutcome() bool {
	return b.Finalized || b.ClientNoShow
}

// Outcome returns the recorded outcome, empty if none
func (b *Booking) Outcome() Outcome {
	switch {
	case b.Finalized:
		return OutcomeFinalized
	case b.ClientNoShow:
		return OutcomeNoShow
	default:
		return ""
	}
}

// IsOwnedBy compares the owner email case-insensitively
func (b *Booking) IsOwnedBy(email string) bool {
	return NormalizeEmail(b.AgentEmail) == NormalizeEmail(email)
}

// AgentBookingsFilter selects an agent's bookings
type AgentBookingsFilter struct {
	AgentEmail string
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	OpenOnly   bool       // skip finalized and no-show bookings
}
