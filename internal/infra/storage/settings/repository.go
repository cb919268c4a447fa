package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

// singletonID is the primary key of the only settings row
const singletonID = 1

// Repository stores studio settings as a single row
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context) (*domain.StudioSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"seats_per_slot",
		"seats_restricted_plans",
		"open_time",
		"close_time",
		"slot_minutes",
		"restricted_plans",
		"updated_by",
		"updated_at",
	).
		From("studio_settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s         domain.StudioSettings
		plans     []string
		updatedBy sql.NullString
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.SeatsPerSlot,
		&s.SeatsRestrictedPlans,
		&s.OpenTime,
		&s.CloseTime,
		&s.SlotMinutes,
		pq.Array(&plans),
		&updatedBy,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	s.RestrictedPlans = make([]domain.PlanTier, 0, len(plans))
	for _, p := range plans {
		s.RestrictedPlans = append(s.RestrictedPlans, domain.PlanTier(p))
	}
	s.UpdatedBy = updatedBy.String
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert writes the settings row, creating it on first use
func (r *Repository) Upsert(ctx context.Context, s *domain.StudioSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	plans := make([]string, 0, len(s.RestrictedPlans))
	for _, p := range s.RestrictedPlans {
		plans = append(plans, string(p))
	}

	query, args, err := psqlbuilder.Insert("studio_settings").
		Columns(
			"id",
			"seats_per_slot",
			"seats_restricted_plans",
			"open_time",
			"close_time",
			"slot_minutes",
			"restricted_plans",
			"updated_by",
		).
		Values(
			singletonID,
			s.SeatsPerSlot,
			s.SeatsRestrictedPlans,
			s.OpenTime,
			s.CloseTime,
			s.SlotMinutes,
			pq.Array(plans),
			s.UpdatedBy,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			seats_per_slot = EXCLUDED.seats_per_slot,
			seats_restricted_plans = EXCLUDED.seats_restricted_plans,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_minutes = EXCLUDED.slot_minutes,
			restricted_plans = EXCLUDED.restricted_plans,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}
	s.UpdatedAt = updatedAt.Time

	return nil
}
