package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "invalid booking ID"
	msgNotFound         = "booking not found"
	msgUnauthorized     = "caller is not identified"
	msgForbidden        = "only the owner may delete a booking"
	msgWindowClosed     = "bookings can no longer be deleted less than 24 hours before start"
	msgOutcomeSet       = "booking is already finalized or marked as no-show"
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

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID, caller); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%d, caller=%s", bookingID, caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrDeletionWindowClosed):
			h.logger.Warn("DELETE /bookings/{id} - Deletion window closed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgWindowClosed)

		case errors.Is(err, bookings.ErrOutcomeAlreadySet):
			h.logger.Warn("DELETE /bookings/{id} - Outcome already set: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgOutcomeSet)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%d, caller=%s", bookingID, caller.Email)
	handlers.RespondNoContent(w)
}
