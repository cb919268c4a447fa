package list_day_blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type DayBlockService interface {
	List(ctx context.Context, caller domain.Caller, from, to *time.Time) ([]*domain.DayBlock, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
