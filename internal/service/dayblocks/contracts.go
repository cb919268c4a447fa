package dayblocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// DayBlockRepository persists day blocks
type DayBlockRepository interface {
	Create(ctx context.Context, block *domain.DayBlock) (*domain.DayBlock, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.DayBlock, error)
	List(ctx context.Context, from, to *time.Time) ([]*domain.DayBlock, error)
	Delete(ctx context.Context, date time.Time) error
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
