package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type BookingRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

type AgentRepository interface {
	List(ctx context.Context) ([]*domain.Agent, error)
}

type DayBlockRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayBlock, error)
}

// PolicyProvider returns the capacity policy in force
type PolicyProvider interface {
	Policy(ctx context.Context) (availability.Policy, error)
}

// TransactionManager runs fn in a read-only transaction so the snapshot is consistent
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface used by the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
