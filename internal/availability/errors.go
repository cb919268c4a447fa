package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

var (
	// ErrInvalidInput is returned for malformed candidates and policies.
	// Policy outcomes are never errors, they are reported through Decision.
	ErrInvalidInput = errors.New("availability: invalid input")
)

// ReasonCode is the machine readable cause of a rejection
type ReasonCode string

const (
	ReasonDayBlocked                  ReasonCode = "day_blocked"
	ReasonSelfConflict                ReasonCode = "self_conflict"
	ReasonRestrictedPlanExclusivity   ReasonCode = "restricted_plan_exclusivity"
	ReasonCapacityExhausted           ReasonCode = "capacity_exhausted"
	ReasonRestrictedCapacityExhausted ReasonCode = "restricted_capacity_exhausted"
)

// Rejection explains why a candidate cannot be booked.
// Slot is set for reasons tied to a specific grid slot or booking.
type Rejection struct {
	Code    ReasonCode
	Message string
	Slot    types.TimeString
}

func (r *Rejection) Error() string {
	if r.Slot.IsZero() {
		return fmt.Sprintf("%s: %s", r.Code, r.Message)
	}
	return fmt.Sprintf("%s at %s: %s", r.Code, r.Slot, r.Message)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
