package list_day_blocks

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/dayblocks"
)

const (
	msgInvalidQuery = "invalid from/to, expected YYYY-MM-DD"
	msgUnauthorized = "caller is not identified"
	msgForbidden    = "only admins may list day blocks"
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

// Handle GET /api/v1/day-blocks?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	q := r.URL.Query()
	from, err := handlers.ParseOptionalDate(q.Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	to, err := handlers.ParseOptionalDate(q.Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.List(r.Context(), caller, from, to)
	if err != nil {
		switch {
		case errors.Is(err, dayblocks.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, dayblocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /day-blocks - Failed to list day blocks: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainDayBlocks(list))
}
