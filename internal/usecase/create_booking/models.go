package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Request is a booking request of the authenticated agent
type Request struct {
	AgentEmail string
	Date       time.Time // calendar date only
	StartTime  types.TimeString
	EndTime    types.TimeString
	ClientName string
	Price      float64
}

// SlotCost is the seat taken in one spanned grid slot
type SlotCost struct {
	Start   types.TimeString
	End     types.TimeString
	NewSeat bool
}

// Response is the created booking
type Response struct {
	ID         int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	AgentEmail string
	ClientName string
	Price      float64
	Slots      []SlotCost
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
