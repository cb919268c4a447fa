package dayblock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var blockColumns = []string{"id", "block_date", "reason", "created_by", "created_at"}

// Repository stores administrative day blocks, at most one per date
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, block *domain.DayBlock) (*domain.DayBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_blocks").
		Columns("block_date", "reason", "created_by").
		Values(block.Date.Format(domain.DateFormat), block.Reason, block.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateBlock
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByDate returns ErrDayBlockNotFound when the date is open
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.DayBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("day_blocks").
		Where(squirrel.Eq{"block_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDayBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan block: %w", ErrScanRow, err)
	}

	return block, nil
}

// List returns blocks with from <= date <= to. Nil bounds are open.
func (r *Repository) List(ctx context.Context, from, to *time.Time) ([]*domain.DayBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("day_blocks").
		OrderBy("block_date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"block_date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"block_date": to.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.DayBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

func (r *Repository) Delete(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("day_blocks").
		Where(squirrel.Eq{"block_date": date.Format(domain.DateFormat)}).
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
		return ErrDayBlockNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.DayBlock, error) {
	var (
		block     domain.DayBlock
		createdAt sql.NullTime
	)
	if err := row.Scan(&block.ID, &block.Date, &block.Reason, &block.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	block.CreatedAt = createdAt.Time
	return &block, nil
}
