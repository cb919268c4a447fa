package agent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var agentColumns = []string{
	"id",
	"email",
	"name",
	"plan_tier",
	"monthly_booking_limit",
	"created_at",
}

// Repository stores the studio roster in the agents table.
// Emails are stored lowercased.
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	agent.Email = domain.NormalizeEmail(agent.Email)

	query, args, err := psqlbuilder.Insert("agents").
		Columns("email", "name", "plan_tier", "monthly_booking_limit").
		Values(agent.Email, agent.Name, string(agent.PlanTier), agent.MonthlyBookingLimit).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&agent.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateAgent
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	agent.CreatedAt = createdAt.Time

	return agent, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(agentColumns...).
		From("agents").
		Where(squirrel.Eq{"email": domain.NormalizeEmail(email)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	agent, err := scanAgent(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan agent: %w", ErrScanRow, err)
	}

	return agent, nil
}

// List returns the whole roster ordered by email
func (r *Repository) List(ctx context.Context) ([]*domain.Agent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(agentColumns...).
		From("agents").
		OrderBy("email ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	agents := make([]*domain.Agent, 0)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return agents, nil
}

func (r *Repository) Delete(ctx context.Context, email string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("agents").
		Where(squirrel.Eq{"email": domain.NormalizeEmail(email)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAgentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAgent(row rowScanner) (*domain.Agent, error) {
	var (
		agent     domain.Agent
		plan      string
		createdAt sql.NullTime
	)
	if err := row.Scan(
		&agent.ID,
		&agent.Email,
		&agent.Name,
		&plan,
		&agent.MonthlyBookingLimit,
		&createdAt,
	); err != nil {
		return nil, err
	}
	agent.PlanTier = domain.PlanTier(plan)
	agent.CreatedAt = createdAt.Time
	return &agent, nil
}
