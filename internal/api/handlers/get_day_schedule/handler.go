package get_day_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	getDaySchedule "github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_day_schedule"
)

const msgInvalidDate = "invalid date, expected YYYY-MM-DD"

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/{date}
// Public; client details are included only for the identified caller's own bookings.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /schedule/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getDaySchedule.Request{Date: date}
	if caller, ok := middleware.GetCaller(r.Context()); ok {
		req.Caller = &caller
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("GET /schedule/{date} - Failed to build schedule: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
