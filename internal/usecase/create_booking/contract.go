package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/events"
)

// BookingRepository is the booking storage used inside the booking transaction
type BookingRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	LockAgent(ctx context.Context, agentEmail string) error
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	CountByAgentInRange(ctx context.Context, agentEmail string, from, to time.Time) (int, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AgentRepository provides the roster
type AgentRepository interface {
	List(ctx context.Context) ([]*domain.Agent, error)
}

// DayBlockRepository looks up administrative blocks
type DayBlockRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayBlock, error)
}

// PolicyProvider returns the capacity policy in force
type PolicyProvider interface {
	Policy(ctx context.Context) (availability.Policy, error)
}

// TransactionManager runs fn in a read committed transaction
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher sends booking events
type EventPublisher interface {
	Publish(ctx context.Context, e events.BookingEvent) error
}

// Decision labels passed to DecisionRecorder
const (
	resultAccepted     = "accepted"
	resultRejected     = "rejected"
	reasonNone         = "none"
	reasonMonthlyLimit = "monthly_limit"
)

// DecisionRecorder counts availability decisions
type DecisionRecorder interface {
	RecordDecision(result, reason string)
}

// TimeProvider returns the current time (replaced in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface used by the use case
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

type nopRecorder struct{}

func (nopRecorder) RecordDecision(string, string) {}
