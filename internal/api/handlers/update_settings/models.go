package update_settings

import (
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// UpdateSettingsRequest HTTP request model; omitted fields are left unchanged
type UpdateSettingsRequest struct {
	SeatsPerSlot         *int     `json:"seatsPerSlot,omitempty"`
	SeatsRestrictedPlans *int     `json:"seatsRestrictedPlans,omitempty"`
	OpenTime             *string  `json:"openTime,omitempty"`
	CloseTime            *string  `json:"closeTime,omitempty"`
	SlotMinutes          *int     `json:"slotMinutes,omitempty"`
	RestrictedPlans      []string `json:"restrictedPlans,omitempty"`
}

func (r *UpdateSettingsRequest) ToServiceRequest() (*models.UpdateSettingsRequest, error) {
	req := &models.UpdateSettingsRequest{
		SeatsPerSlot:         r.SeatsPerSlot,
		SeatsRestrictedPlans: r.SeatsRestrictedPlans,
		SlotMinutes:          r.SlotMinutes,
	}
	if r.OpenTime != nil {
		t, err := types.NewTimeStringFromString(*r.OpenTime)
		if err != nil {
			return nil, err
		}
		req.OpenTime = &t
	}
	if r.CloseTime != nil {
		t, err := types.NewTimeStringFromString(*r.CloseTime)
		if err != nil {
			return nil, err
		}
		req.CloseTime = &t
	}
	if r.RestrictedPlans != nil {
		req.RestrictedPlans = make([]domain.PlanTier, 0, len(r.RestrictedPlans))
		for _, p := range r.RestrictedPlans {
			req.RestrictedPlans = append(req.RestrictedPlans, domain.PlanTier(p))
		}
	}
	return req, nil
}
