package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"booking_date",
	"start_time",
	"end_time",
	"agent_email",
	"client_name",
	"price",
	"finalized",
	"client_no_show",
	"finalized_at",
	"created_at",
	"updated_at",
}

// Repository stores bookings in the bookings table
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking and fills ID, CreatedAt and UpdatedAt.
// Uses the transaction from ctx when there is one.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_date",
			"start_time",
			"end_time",
			"agent_email",
			"client_name",
			"price",
		).
		Values(
			booking.Date.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			domain.NormalizeEmail(booking.AgentEmail),
			booking.ClientName,
			booking.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.AgentEmail = domain.NormalizeEmail(booking.AgentEmail)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID returns one booking. Inside a transaction the row is locked FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByDate returns every booking on date ordered by start time.
// This is the snapshot the availability engine decides against.
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByAgent returns an agent's bookings, newest first
func (r *Repository) GetByAgent(ctx context.Context, filter domain.AgentBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"agent_email": domain.NormalizeEmail(filter.AgentEmail)}).
		OrderBy("booking_date DESC", "start_time DESC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.To.Format(domain.DateFormat)})
	}
	if filter.OpenOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"finalized": false, "client_no_show": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgent - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountByAgentInRange counts an agent's bookings with from <= date <= to
func (r *Repository) CountByAgentInRange(ctx context.Context, agentEmail string, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"agent_email": domain.NormalizeEmail(agentEmail)}).
		Where(squirrel.GtOrEq{"booking_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"booking_date": to.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByAgentInRange - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByAgentInRange - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// SetOutcome records that a booking was finalized or that the client did not show up
func (r *Repository) SetOutcome(ctx context.Context, id int64, outcome domain.Outcome, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("finalized", outcome == domain.OutcomeFinalized).
		Set("client_no_show", outcome == domain.OutcomeNoShow).
		Set("finalized_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOutcome - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOutcome - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOutcome - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete removes a booking
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
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
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// LockDate serializes writers of one calendar date until the transaction ends.
// Run it in a read committed transaction so the reads after it see the
// bookings committed by the previous holder.
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	return r.advisoryLock(ctx, "LockDate", "bookings:"+date.Format(domain.DateFormat))
}

// LockAgent serializes bookings of one agent across dates, guarding the
// monthly limit count. Take it after LockDate.
func (r *Repository) LockAgent(ctx context.Context, agentEmail string) error {
	return r.advisoryLock(ctx, "LockAgent", "agents:"+domain.NormalizeEmail(agentEmail))
}

func (r *Repository) advisoryLock(ctx context.Context, op, key string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", key)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build lock query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - acquire lock: %w", ErrExecQuery, op, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		finalizedAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.AgentEmail,
		&booking.ClientName,
		&booking.Price,
		&booking.Finalized,
		&booking.ClientNoShow,
		&finalizedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if finalizedAt.Valid {
		t := finalizedAt.Time
		booking.FinalizedAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
