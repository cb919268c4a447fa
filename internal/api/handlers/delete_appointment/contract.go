package delete_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

type BookingService interface {
	DeleteAppointment(ctx context.Context, date time.Time, caller domain.Caller) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
