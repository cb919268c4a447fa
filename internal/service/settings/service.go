package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/settings/models"
)

// Service manages the studio capacity and grid settings.
// Until an admin saves settings, the defaults from the config file apply.
type Service struct {
	settingsRepo SettingsRepository
	defaults     domain.StudioSettings
	logger       Logger
}

func NewService(settingsRepo SettingsRepository, defaults *domain.StudioSettings, logger Logger) *Service {
	if defaults == nil {
		defaults = domain.DefaultStudioSettings()
	}
	return &Service{
		settingsRepo: settingsRepo,
		defaults:     *defaults,
		logger:       logger,
	}
}

// Get returns the current settings
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, isDefault, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	policy := availability.PolicyFromSettings(current)
	return models.FromDomainSettings(current, policy.Grid.Slots(), isDefault), nil
}

// Policy returns the settings as an availability policy.
// Called with a transaction context it reads inside that transaction.
func (s *Service) Policy(ctx context.Context) (availability.Policy, error) {
	current, _, err := s.current(ctx)
	if err != nil {
		return availability.Policy{}, err
	}
	return availability.PolicyFromSettings(current), nil
}

// Update applies a partial update. Admin only.
func (s *Service) Update(ctx context.Context, caller domain.Caller, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating studio settings by %s", caller.Email)

	if !caller.IsAdmin {
		s.logger.Warn("Update: %s is not an admin", caller.Email)
		return nil, ErrAccessDenied
	}

	current, _, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	updated := *current
	req.ApplyTo(&updated)
	if err := validateSettings(&updated); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	updated.UpdatedBy = domain.NormalizeEmail(caller.Email)

	if err := s.settingsRepo.Upsert(ctx, &updated); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved (seats=%d, restricted=%d, grid=%s-%s/%dm)",
		updated.SeatsPerSlot, updated.SeatsRestrictedPlans, updated.OpenTime, updated.CloseTime, updated.SlotMinutes)
	policy := availability.PolicyFromSettings(&updated)
	return models.FromDomainSettings(&updated, policy.Grid.Slots(), false), nil
}

func (s *Service) current(ctx context.Context) (*domain.StudioSettings, bool, error) {
	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			defaults := s.defaults
			defaults.RestrictedPlans = append([]domain.PlanTier{}, s.defaults.RestrictedPlans...)
			return &defaults, true, nil
		}
		s.logger.Error("current: repository error: %v", err)
		return nil, false, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	return stored, false, nil
}

func validateSettings(st *domain.StudioSettings) error {
	if st.SeatsPerSlot < domain.MinSeatsPerSlot || st.SeatsPerSlot > domain.MaxSeatsPerSlot {
		return fmt.Errorf("%w: seatsPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinSeatsPerSlot, domain.MaxSeatsPerSlot)
	}
	if st.SeatsRestrictedPlans < 1 || st.SeatsRestrictedPlans > st.SeatsPerSlot {
		return fmt.Errorf("%w: seatsRestrictedPlans must be between 1 and seatsPerSlot", ErrInvalidInput)
	}
	if st.SlotMinutes < domain.MinSlotMinutes || st.SlotMinutes > domain.MaxSlotMinutes {
		return fmt.Errorf("%w: slotMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}
	for _, p := range st.RestrictedPlans {
		if p == "" {
			return fmt.Errorf("%w: restricted plan names must not be empty", ErrInvalidInput)
		}
	}
	if err := availability.PolicyFromSettings(st).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
