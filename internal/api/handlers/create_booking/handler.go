package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/availability"
	createBooking "github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidRequest     = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgUnauthorized       = "caller is not identified"
	msgAgentNotFound      = "agent is not on the studio roster"
	msgMonthlyLimit       = "monthly booking limit reached"
	msgInvalidDate        = "booking must start in the future"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller.Email)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejection *availability.Rejection
		switch {
		case errors.As(err, &rejection):
			h.logger.Warn("POST /bookings - Rejected: agent=%s, reason=%s", caller.Email, rejection.Code)
			handlers.RespondRejection(w, string(rejection.Code), rejection.Slot.String(), rejection.Message)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: agent=%s, error=%v", caller.Email, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: agent=%s", caller.Email)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrAgentNotFound):
			h.logger.Warn("POST /bookings - Agent not on roster: agent=%s", caller.Email)
			handlers.RespondForbidden(w, msgAgentNotFound)

		case errors.Is(err, createBooking.ErrMonthlyLimitReached):
			h.logger.Warn("POST /bookings - Monthly limit reached: agent=%s", caller.Email)
			handlers.RespondUnprocessable(w, msgMonthlyLimit)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: agent=%s, error=%v", caller.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, agent=%s", result.ID, caller.Email)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
