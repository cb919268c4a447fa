package delete_day_block

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type DayBlockService interface {
	Delete(ctx context.Context, caller domain.Caller, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
