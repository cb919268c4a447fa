package get_day_block

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/dayblocks"
)

const msgInvalidDate = "invalid date, expected YYYY-MM-DD"

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

// Handle GET /api/v1/day-blocks/{date}
// An open date is 200 with blocked=false.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	key := date.Format(domain.DateFormat)

	block, err := h.service.GetByDate(r.Context(), date)
	if err != nil && !errors.Is(err, dayblocks.ErrDayBlockNotFound) {
		h.logger.Error("GET /day-blocks/{date} - Failed to get day block: date=%s, error=%v", key, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainDayBlock(key, block))
}
