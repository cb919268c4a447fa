package create_day_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/dayblocks"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgUnauthorized       = "caller is not identified"
	msgForbidden          = "only admins may block dates"
	msgAlreadyBlocked     = "date is already blocked"
)

type Handler struct {
	service DayBlockService
	logger  Logger
}

func NewHandler(service DayBlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/day-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateDayBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /day-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	block, err := h.service.Create(r.Context(), caller, date, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, dayblocks.ErrAccessDenied):
			h.logger.Warn("POST /day-blocks - Access denied: caller=%s", caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, dayblocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, dayblocks.ErrAlreadyBlocked):
			handlers.RespondConflict(w, msgAlreadyBlocked)

		default:
			h.logger.Error("POST /day-blocks - Failed to block date: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /day-blocks - Date blocked: date=%s, by=%s", req.Date, caller.Email)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainDayBlock(block))
}
