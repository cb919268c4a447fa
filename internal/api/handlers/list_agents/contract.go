package list_agents

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type AgentService interface {
	List(ctx context.Context, caller domain.Caller) ([]*domain.Agent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
