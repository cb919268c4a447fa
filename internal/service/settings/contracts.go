package settings

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// SettingsRepository persists the studio settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.StudioSettings, error)
	Upsert(ctx context.Context, s *domain.StudioSettings) error
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
