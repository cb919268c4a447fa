package get_agent_bookings

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListAgentBookings(ctx context.Context, req *models.ListAgentBookingsRequest, caller domain.Caller) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
