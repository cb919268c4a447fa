package get_day_block

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type DayBlockService interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayBlock, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
