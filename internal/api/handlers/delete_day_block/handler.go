package delete_day_block

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/dayblocks"
)

const (
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgUnauthorized = "caller is not identified"
	msgForbidden    = "only admins may unblock dates"
	msgNotFound     = "date is not blocked"
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

// Handle DELETE /api/v1/day-blocks/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), caller, date); err != nil {
		switch {
		case errors.Is(err, dayblocks.ErrAccessDenied):
			h.logger.Warn("DELETE /day-blocks/{date} - Access denied: caller=%s", caller.Email)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, dayblocks.ErrDayBlockNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("DELETE /day-blocks/{date} - Failed to unblock date: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /day-blocks/{date} - Date unblocked by %s", caller.Email)
	handlers.RespondNoContent(w)
}
