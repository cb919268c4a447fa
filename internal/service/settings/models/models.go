package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// UpdateSettingsRequest is a partial update; nil fields are left unchanged
type UpdateSettingsRequest struct {
	SeatsPerSlot         *int
	SeatsRestrictedPlans *int
	OpenTime             *types.TimeString
	CloseTime            *types.TimeString
	SlotMinutes          *int
	RestrictedPlans      []domain.PlanTier // nil = unchanged, empty = no restricted plans
}

// ApplyTo copies the set fields onto s
func (r *UpdateSettingsRequest) ApplyTo(s *domain.StudioSettings) {
	if r.SeatsPerSlot != nil {
		s.SeatsPerSlot = *r.SeatsPerSlot
	}
	if r.SeatsRestrictedPlans != nil {
		s.SeatsRestrictedPlans = *r.SeatsRestrictedPlans
	}
	if r.OpenTime != nil {
		s.OpenTime = *r.OpenTime
	}
	if r.CloseTime != nil {
		s.CloseTime = *r.CloseTime
	}
	if r.SlotMinutes != nil {
		s.SlotMinutes = *r.SlotMinutes
	}
	if r.RestrictedPlans != nil {
		s.RestrictedPlans = append([]domain.PlanTier{}, r.RestrictedPlans...)
	}
}

// SettingsResponse is the studio settings as returned to callers
type SettingsResponse struct {
	SeatsPerSlot         int                `json:"seatsPerSlot"`
	SeatsRestrictedPlans int                `json:"seatsRestrictedPlans"`
	OpenTime             types.TimeString   `json:"openTime"`
	CloseTime            types.TimeString   `json:"closeTime"`
	SlotMinutes          int                `json:"slotMinutes"`
	RestrictedPlans      []domain.PlanTier  `json:"restrictedPlans"`
	Slots                []types.TimeString `json:"slots"`
	IsDefault            bool               `json:"isDefault"`
	UpdatedBy            string             `json:"updatedBy,omitempty"`
	UpdatedAt            *time.Time         `json:"updatedAt,omitempty"`
}

func FromDomainSettings(s *domain.StudioSettings, slots []types.TimeString, isDefault bool) *SettingsResponse {
	resp := &SettingsResponse{
		SeatsPerSlot:         s.SeatsPerSlot,
		SeatsRestrictedPlans: s.SeatsRestrictedPlans,
		OpenTime:             s.OpenTime,
		CloseTime:            s.CloseTime,
		SlotMinutes:          s.SlotMinutes,
		RestrictedPlans:      append([]domain.PlanTier{}, s.RestrictedPlans...),
		Slots:                slots,
		IsDefault:            isDefault,
		UpdatedBy:            s.UpdatedBy,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
