package create_agent

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/agents"
)

type AgentService interface {
	Create(ctx context.Context, caller domain.Caller, req *agents.CreateAgentRequest) (*domain.Agent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
