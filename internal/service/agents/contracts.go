package agents

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// AgentRepository persists the roster
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	Delete(ctx context.Context, email string) error
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
