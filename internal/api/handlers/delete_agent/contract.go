package delete_agent

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type AgentService interface {
	Delete(ctx context.Context, caller domain.Caller, email string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
