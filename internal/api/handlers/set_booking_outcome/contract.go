package set_booking_outcome

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
)

type BookingService interface {
	Finalize(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error)
	MarkNoShow(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
