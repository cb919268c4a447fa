package get_day_schedule

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Request selects a date; Caller is nil for anonymous reads
type Request struct {
	Date   time.Time
	Caller *domain.Caller
}

// Slot is the occupancy of one grid slot
type Slot struct {
	Start      types.TimeString
	End        types.TimeString
	Total      int
	Restricted int
	FreeSeats  int
	Full       bool
}

// Part is one booked interval of an appointment.
// ClientName and Price are set only for the caller's own bookings.
type Part struct {
	ID           int64
	StartTime    types.TimeString
	EndTime      types.TimeString
	ClientName   *string
	Price        *float64
	Finalized    bool
	ClientNoShow bool
}

// Appointment is the day's bookings of one agent
type Appointment struct {
	AgentEmail string
	AgentName  string
	PlanTier   domain.PlanTier
	StartTime  types.TimeString
	EndTime    types.TimeString
	Own        bool
	Parts      []Part
}

// Response is the schedule of one date
type Response struct {
	Date                 time.Time
	Blocked              bool
	BlockReason          string
	Open                 types.TimeString
	Close                types.TimeString
	SlotMinutes          int
	SeatsPerSlot         int
	SeatsRestrictedPlans int
	Slots                []Slot
	Appointments         []Appointment
}
