package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// StudioSettings is the persisted capacity and grid policy. There is a single row.
type StudioSettings struct {
	SeatsPerSlot         int
	SeatsRestrictedPlans int
	OpenTime             types.TimeString
	CloseTime            types.TimeString
	SlotMinutes          int
	RestrictedPlans      []PlanTier
	UpdatedBy            string
	UpdatedAt            time.Time
}

// DefaultStudioSettings returns the reference configuration
func DefaultStudioSettings() *StudioSettings {
	return &StudioSettings{
		SeatsPerSlot:         DefaultSeatsPerSlot,
		SeatsRestrictedPlans: DefaultSeatsRestrictedPlans,
		OpenTime:             DefaultOpenTime,
		CloseTime:            DefaultCloseTime,
		SlotMinutes:          DefaultSlotMinutes,
		RestrictedPlans:      []PlanTier{PlanGuest, PlanPercentage},
	}
}

// IsRestricted reports whether tier is one of the restricted plans
func (s *StudioSettings) IsRestricted(tier PlanTier) bool {
	for _, p := range s.RestrictedPlans {
		if p == tier {
			return true
		}
	}
	return false
}
