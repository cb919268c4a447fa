package delete_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
)

const (
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgNotFound     = "no open bookings on this date"
	msgUnauthorized = "caller is not identified"
	msgWindowClosed = "bookings can no longer be deleted less than 24 hours before start"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("DELETE /appointments/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	deleted, err := h.service.DeleteAppointment(r.Context(), date, caller)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrDeletionWindowClosed):
			h.logger.Warn("DELETE /appointments/{date} - Deletion window closed: caller=%s", caller.Email)
			handlers.RespondConflict(w, msgWindowClosed)

		default:
			h.logger.Error("DELETE /appointments/{date} - Failed to delete: caller=%s, error=%v", caller.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{date} - Deleted %d bookings of %s", deleted, caller.Email)
	handlers.RespondJSON(w, http.StatusOK, DeleteAppointmentResponse{Deleted: deleted})
}
