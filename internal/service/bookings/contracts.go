package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/events"
)

// BookingRepository is the booking storage used by the service
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	GetByAgent(ctx context.Context, filter domain.AgentBookingsFilter) ([]*domain.Booking, error)
	SetOutcome(ctx context.Context, id int64, outcome domain.Outcome, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

// AgentRepository looks up the deletion policy of an agent
type AgentRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
}

// TransactionManager runs fn inside a transaction carried in ctx
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher sends booking events
type EventPublisher interface {
	Publish(ctx context.Context, e events.BookingEvent) error
}

// TimeProvider returns the current time
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider returns the wall clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
