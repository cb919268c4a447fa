package get_agent_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "invalid query: open must be a boolean, from/to YYYY-MM-DD"
	msgUnauthorized = "caller is not identified"
	msgForbidden    = "access denied"
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

// Handle GET /api/v1/agents/{email}/bookings?open=true&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := parseQuery(email, r)
	if err != nil {
		h.logger.Warn("GET /agents/{email}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListAgentBookings(r.Context(), req, caller)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /agents/{email}/bookings - Access denied: agent=%s, caller=%s", email, caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /agents/{email}/bookings - Failed to list bookings: agent=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /agents/{email}/bookings - Listed %d bookings: agent=%s", len(result.Bookings), email)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(email string, r *http.Request) (*models.ListAgentBookingsRequest, error) {
	q := r.URL.Query()
	req := &models.ListAgentBookingsRequest{AgentEmail: email}

	if open := q.Get("open"); open != "" {
		v, err := strconv.ParseBool(open)
		if err != nil {
			return nil, err
		}
		req.OpenOnly = v
	}

	var err error
	if req.From, err = handlers.ParseOptionalDate(q.Get("from")); err != nil {
		return nil, err
	}
	if req.To, err = handlers.ParseOptionalDate(q.Get("to")); err != nil {
		return nil, err
	}
	return req, nil
}
