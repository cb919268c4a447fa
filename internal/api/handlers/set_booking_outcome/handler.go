package set_booking_outcome

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "invalid booking ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidOutcome     = "outcome must be 'finalized' or 'no_show'"
	msgNotFound           = "booking not found"
	msgUnauthorized       = "caller is not identified"
	msgForbidden          = "only the owner may record an outcome"
	msgNotElapsed         = "booking has not ended yet"
	msgOutcomeSet         = "booking is already finalized or marked as no-show"
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

// Handle PATCH /api/v1/bookings/{bookingId}/outcome
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/outcome - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SetOutcomeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/outcome - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	outcome, ok := req.ToDomain()
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidOutcome)
		return
	}

	var booking *models.BookingResponse
	if outcome == domain.OutcomeNoShow {
		booking, err = h.service.MarkNoShow(r.Context(), bookingID, caller)
	} else {
		booking, err = h.service.Finalize(r.Context(), bookingID, caller)
	}
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/outcome - Access denied: booking_id=%d, caller=%s", bookingID, caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrNotElapsed):
			handlers.RespondConflict(w, msgNotElapsed)

		case errors.Is(err, bookings.ErrOutcomeAlreadySet):
			handlers.RespondConflict(w, msgOutcomeSet)

		default:
			h.logger.Error("PATCH /bookings/{id}/outcome - Failed to set outcome: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/outcome - Booking marked %s: booking_id=%d", outcome, bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
